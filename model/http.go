package model

type ParseResponse struct {
	Root  *Sequence `json:"root"`
	Stats Stats     `json:"stats"`
}

type ErrorResponse struct {
	Error  string `json:"detail"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	Name   string `json:"name,omitempty"`
}
