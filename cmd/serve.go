package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/tunesheet/constants"
	"github.com/jsphweid/tunesheet/midi"
	"github.com/jsphweid/tunesheet/model"
	"github.com/jsphweid/tunesheet/sheet"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, defaults to the config")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the compiler over http",
	Long:  `Serves POST /parse (sheet in, JSON tune out) and POST /render (sheet in, midi out).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := settings.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		return serve(addr)
	},
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/parse", HandleParse).Methods("POST")
	router.HandleFunc("/render", HandleRender).Methods("POST")
	router.HandleFunc("/health", HandleHealth).Methods("GET")
	return cors.Default().Handler(router)
}

func serve(addr string) error {
	logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, NewRouter())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("could not encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	res := model.ErrorResponse{Error: err.Error()}

	var serr *sheet.SyntaxError
	var uerr *sheet.UnresolvedReferenceError
	var rerr *sheet.RangeError
	switch {
	case errors.As(err, &serr):
		res.Line, res.Column = serr.Pos.Line, serr.Pos.Column
	case errors.As(err, &uerr):
		res.Line, res.Column = uerr.Pos.Line, uerr.Pos.Column
		res.Name = uerr.Name
	case errors.As(err, &rerr):
		res.Line, res.Column = rerr.Pos.Line, rerr.Pos.Column
	}
	writeJSON(w, status, res)
}

func compileRequest(w http.ResponseWriter, r *http.Request) (*sheet.Sheet, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxSheetBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return nil, false
	}
	s, err := parser.Compile("request", string(body))
	if err != nil {
		logger.Debug("rejected sheet", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return s, true
}

func HandleParse(w http.ResponseWriter, r *http.Request) {
	s, ok := compileRequest(w, r)
	if !ok {
		return
	}
	st := model.Collect(s.Root)
	if st.Visits > constants.MaxTreeNodes {
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Errorf("tune expands to %d nodes, more than the %d that can be sent", st.Visits, constants.MaxTreeNodes))
		return
	}
	writeJSON(w, http.StatusOK, model.ParseResponse{Root: s.Root, Stats: st})
}

// HandleRender answers with a midi file. The seed and bpm query parameters
// override the configured values.
func HandleRender(w http.ResponseWriter, r *http.Request) {
	opts := renderOptions()
	q := r.URL.Query()
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		opts.Seed = seed
	}
	if v := q.Get("bpm"); v != "" {
		bpm, err := strconv.ParseFloat(v, 64)
		if err != nil || bpm <= 0 {
			http.Error(w, "bpm must be a positive number", http.StatusBadRequest)
			return
		}
		opts.BPM = bpm
	}

	s, ok := compileRequest(w, r)
	if !ok {
		return
	}
	mf, err := midi.Render(s.Root, opts)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	var buf bytes.Buffer
	if _, err := mf.WriteTo(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	id := uuid.New().String()
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.mid"`)
	w.Header().Set("X-Render-Id", id)
	w.Write(buf.Bytes())
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
