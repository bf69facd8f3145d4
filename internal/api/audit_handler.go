package api

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/lzjever/ledger-audit/internal/api/middleware"
	"github.com/lzjever/ledger-audit/internal/core"
	"github.com/lzjever/ledger-audit/internal/observability"
)

type RecordResponse struct {
	Status  string `json:"status"`
	AuditID string `json:"audit_id"`
}

// RecordAudit validates a submitted event, stamps it and writes it to the log.
func (a *API) RecordAudit(w http.ResponseWriter, r *http.Request) {
	log := observability.RequestLogger(a.log, middleware.GetRequestID(r), r.Method, r.URL.Path)

	body, appErr := a.readBody(r)
	if appErr != nil {
		log.Warn("read audit body failed", zap.Error(appErr))
		WriteError(w, appErr)
		return
	}

	ev, err := core.DecodeEvent(body)
	if err != nil {
		observability.EventsTotal.WithLabelValues(observability.OutcomeInvalidJSON).Inc()
		log.Debug("invalid audit body", zap.Error(err))
		WriteError(w, core.NewAppError(core.ErrBadRequest, core.MsgInvalidJSON))
		return
	}

	if missing := ev.Missing(); len(missing) > 0 {
		observability.EventsTotal.WithLabelValues(observability.OutcomeMissingFields).Inc()
		WriteError(w, core.NewMissingFieldsError(missing))
		return
	}

	auditID, err := ev.Annotate(a.now)
	if err != nil {
		log.Error("annotate audit event failed", zap.Error(err))
		WriteError(w, core.NewAppError(core.ErrInternal, core.MsgInternal))
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error("marshal audit event failed", zap.Error(err))
		WriteError(w, core.NewAppError(core.ErrInternal, core.MsgInternal))
		return
	}

	// The event rides as an embedded JSON value in the structured line
	// ("event":{"action":"login",...}), compact, not as preformatted text.
	log.Info("audit event recorded",
		zap.String("audit_id", auditID),
		zap.Reflect("event", json.RawMessage(payload)),
	)
	observability.EventsTotal.WithLabelValues(observability.OutcomeRecorded).Inc()

	WriteJSON(w, http.StatusCreated, RecordResponse{
		Status:  "recorded",
		AuditID: auditID,
	})
}

// readBody reads exactly Content-Length bytes. A request without a length
// has an empty body. Memory grows with the bytes actually received, never
// with the declared length.
func (a *API) readBody(r *http.Request) ([]byte, *core.AppError) {
	n := r.ContentLength
	if n <= 0 {
		return nil, nil
	}
	if n > a.cfg.MaxBodyBytes {
		observability.EventsTotal.WithLabelValues(observability.OutcomeTooLarge).Inc()
		return nil, core.NewAppError(core.ErrPayloadTooLarge, core.MsgTooLarge)
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, n))
	if err != nil || int64(len(body)) < n {
		observability.EventsTotal.WithLabelValues(observability.OutcomeInvalidJSON).Inc()
		return nil, core.NewAppError(core.ErrBadRequest, core.MsgInvalidJSON)
	}
	return body, nil
}
