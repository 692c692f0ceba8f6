// Package server serves dictionary lookups to the browser userscript over
// connect.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"github.com/at-ishikawa/latinlookup/internal/dictionary"
	"github.com/at-ishikawa/latinlookup/internal/dictionary/latinwords"
)

// LookupProcedure is the full name of the lookup procedure.
const LookupProcedure = "/latinlookup.v1.LookupService/Lookup"

type LookupRequest struct {
	// Text is the selected or hovered text.
	Text string `json:"text"`
	// HTML asks for the rendered popup fragment as well.
	HTML bool `json:"html"`
}

type LookupResponse struct {
	Candidate string                 `json:"candidate"`
	Key       string                 `json:"key"`
	Result    latinwords.ParseResult `json:"result"`
	HTML      string                 `json:"html,omitempty"`
}

// SelectionLookuper looks up the candidate word of a text selection.
type SelectionLookuper interface {
	LookupSelection(ctx context.Context, text string) (string, latinwords.ParseResult, error)
}

type LookupHandler struct {
	reader SelectionLookuper
}

func NewLookupHandler(reader SelectionLookuper) *LookupHandler {
	return &LookupHandler{
		reader: reader,
	}
}

// NewLookupServiceHandler returns the path and handler to mount on a mux.
func NewLookupServiceHandler(handler *LookupHandler, options ...connect.HandlerOption) (string, http.Handler) {
	options = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, options...)
	return LookupProcedure, connect.NewUnaryHandler(LookupProcedure, handler.Lookup, options...)
}

func (h *LookupHandler) Lookup(
	ctx context.Context,
	req *connect.Request[LookupRequest],
) (*connect.Response[LookupResponse], error) {
	candidate, result, err := h.reader.LookupSelection(ctx, req.Msg.Text)
	if err != nil {
		if errors.Is(err, dictionary.ErrNoCandidate) {
			return nil, newInvalidTextError(err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, connect.NewError(connect.CodeCanceled, ctxErr)
		}
		slog.Default().Error("failed to lookup word", "candidate", candidate, "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, errors.New("Failed to lookup word"))
	}

	response := &LookupResponse{
		Candidate: candidate,
		Key:       dictionary.Key(candidate),
		Result:    result,
	}
	if req.Msg.HTML {
		response.HTML = latinwords.FormatHTML(result)
	}
	return connect.NewResponse(response), nil
}

func newInvalidTextError(err error) *connect.Error {
	connectErr := connect.NewError(connect.CodeInvalidArgument, err)
	detail, detailErr := connect.NewErrorDetail(&errdetails.BadRequest{
		FieldViolations: []*errdetails.BadRequest_FieldViolation{
			{
				Field:       "text",
				Description: "must contain a Latin word of at least two letters",
			},
		},
	})
	if detailErr != nil {
		slog.Default().Warn("failed to build error detail", "error", detailErr)
		return connectErr
	}
	connectErr.AddDetail(detail)
	return connectErr
}
