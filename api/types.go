// Package api defines the preview server's JSON wire types and a client for
// them.
package api

import "github.com/open-cli-collective/tablecheck/pkg/checkbox"

// ToggleRequest asks the server to set one checkbox.
type ToggleRequest struct {
	Document string `json:"document"`
	Line     int    `json:"line"`
	Index    int    `json:"index"`
	Checked  bool   `json:"checked"`
}

// Target returns the checkbox the request addresses.
func (r ToggleRequest) Target() checkbox.Target {
	return checkbox.Target{Document: r.Document, Line: r.Line, Index: r.Index}
}

// ToggleResponse reports the outcome of a toggle. Checked is the state the
// control should display afterwards.
type ToggleResponse struct {
	Result  checkbox.Result `json:"result"`
	Checked bool            `json:"checked"`
}

// Control describes one bound checkbox of a rendered document.
type Control struct {
	Line    int  `json:"line"`
	Index   int  `json:"index"`
	Checked bool `json:"checked"`
}

// RenderResponse is a rendered document.
type RenderResponse struct {
	Document string    `json:"document"`
	Title    string    `json:"title,omitempty"`
	HTML     string    `json:"html"`
	Preview  string    `json:"preview,omitempty"`
	Controls []Control `json:"controls"`
}

// DocumentList lists the documents in the vault.
type DocumentList struct {
	Documents []string `json:"documents"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Vault  string `json:"vault,omitempty"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
}

func (e *ErrorResponse) Error() string {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return e.Message
}
