package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rehabfolio/portfolio-api/internal/middleware"
	"github.com/rehabfolio/portfolio-api/internal/modules/serializer"
	"github.com/rehabfolio/portfolio-api/internal/modules/service"
	"github.com/rehabfolio/portfolio-api/internal/telemetry"
)

// instrumented gives a handler diagnostics that never touch the response:
// debug logs around each operation, a usage event and a duration metric.
type instrumented struct {
	tel telemetry.Client
	log *zap.Logger
}

type operation struct {
	instrumented
	c     *gin.Context
	name  string
	start time.Time
}

func (i instrumented) begin(c *gin.Context, name string) *operation {
	i.log.Sugar().Debugw(name+" started",
		"requestId", middleware.RequestIDFromContext(c),
		"path", c.Request.URL.Path,
	)
	return &operation{instrumented: i, c: c, name: name, start: time.Now()}
}

// end is deferred by every handler.
func (o *operation) end() {
	ctx := o.c.Request.Context()
	ms := float64(time.Since(o.start).Microseconds()) / 1000
	status := strconv.Itoa(o.c.Writer.Status())

	o.tel.TrackEvent(ctx, o.name, map[string]string{"status": status})
	o.tel.TrackMetric(ctx, o.name+".DurationMs", ms, nil)
	o.log.Sugar().Debugw(o.name+" finished",
		"requestId", middleware.RequestIDFromContext(o.c),
		"status", status,
		"durationMs", ms,
	)
}

func (o *operation) count(metric string, n int) {
	o.tel.TrackMetric(o.c.Request.Context(), o.name+"."+metric, float64(n), nil)
}

// fail maps service errors onto the error body. Anything unexpected becomes
// a generic 500; the detail only goes to logs and telemetry.
func (o *operation) fail(err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		serializer.Abort(o.c, http.StatusBadRequest, serializer.ValidationErr(verr.Details))
	case errors.Is(err, service.ErrNotFound):
		serializer.Abort(o.c, http.StatusNotFound, serializer.NotFound(""))
	case errors.Is(err, service.ErrConflict):
		serializer.Abort(o.c, http.StatusConflict, serializer.Conflict(err.Error()))
	default:
		o.tel.TrackException(o.c.Request.Context(), err, map[string]string{"operation": o.name})
		o.log.Sugar().Errorw(o.name+" failed",
			"requestId", middleware.RequestIDFromContext(o.c),
			"err", err,
		)
		serializer.Abort(o.c, http.StatusInternalServerError, serializer.ServerErr(""))
	}
}

// badBody reports a body that failed to decode or failed its binding tags.
func (o *operation) badBody(err error) {
	if verr, ok := service.AsValidationError(err); ok {
		o.fail(verr)
		return
	}
	o.log.Sugar().Debugw(o.name+" rejected body", "err", err)
	serializer.Abort(o.c, http.StatusBadRequest, serializer.ParamErr("Request body is not valid JSON for this operation"))
}
