package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsphweid/tunesheet/midi"
	"github.com/jsphweid/tunesheet/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(handler http.HandlerFunc, target, body string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)
	return w.Result()
}

func TestHandleParse(t *testing.T) {
	resp := post(HandleParse, "/parse", "BEGIN:\n{ DO4 4\nRE4 4\n} * 3\n")
	body, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Equal("application/json", resp.Header.Get("Content-Type"))

	var parsed struct {
		Root struct {
			Kind     string `json:"kind"`
			Children []struct {
				Kind   string `json:"kind"`
				Repeat struct {
					Mode  string `json:"mode"`
					Count int    `json:"count"`
				} `json:"repeat"`
				Children []json.RawMessage `json:"children"`
			} `json:"children"`
		} `json:"root"`
		Stats model.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal("sequence", parsed.Root.Kind)
	require.Len(t, parsed.Root.Children, 1)
	block := parsed.Root.Children[0]
	assert.Equal("fixed", block.Repeat.Mode)
	assert.Equal(3, block.Repeat.Count)
	assert.Len(block.Children, 2)
	assert.Equal(2, parsed.Stats.Events)
}

func TestHandleParseRefusesHugeTrees(t *testing.T) {
	var b strings.Builder
	b.WriteString("DECLARE:\nn0 := DO4 4\n")
	for i := 1; i <= 40; i++ {
		fmt.Fprintf(&b, "n%d := { n%d\nn%d }\n", i, i-1, i-1)
	}
	b.WriteString("BEGIN:\nn40\n")

	resp := post(HandleParse, "/parse", b.String())
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "more than the 65536 that can be sent")
}

func TestHandleParseErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want model.ErrorResponse
	}{
		{"syntax", "BEGIN:\nDO4 4 }\n", model.ErrorResponse{Line: 2, Column: 7}},
		{"unresolved", "BEGIN:\nDO4 4\nghost\n", model.ErrorResponse{Line: 3, Column: 1, Name: "ghost"}},
		{"range", "BEGIN:\n{ DO4 4 } * (4-1)\n", model.ErrorResponse{Line: 2, Column: 11}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp := post(HandleParse, "/parse", c.body)
			var got model.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

			assert := assert.New(t)
			assert.Equal(http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(got.Error)
			got.Error = ""
			assert.Equal(c.want, got)
		})
	}
}

func TestHandleRender(t *testing.T) {
	resp := post(HandleRender, "/render?seed=3&bpm=90", "BEGIN:\n{ LA4 4 } * (1-2 base 2)\n")

	assert := assert.New(t)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal("audio/midi", resp.Header.Get("Content-Type"))
	assert.Len(resp.Header.Get("X-Render-Id"), 36)

	mf, err := midi.ReadMidi(resp.Body)
	require.NoError(t, err)
	events := midi.ReduceEvents(mf)
	assert.Contains([]int{4, 8}, len(events))
	assert.Equal(uint8(69), events[0].Key)
}

func TestHandleRenderBadQuery(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(http.StatusBadRequest, post(HandleRender, "/render?bpm=-3", "BEGIN:\nDO4 4\n").StatusCode)
	assert.Equal(http.StatusBadRequest, post(HandleRender, "/render?seed=x", "BEGIN:\nDO4 4\n").StatusCode)
}

func TestRouter(t *testing.T) {
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/parse")
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
