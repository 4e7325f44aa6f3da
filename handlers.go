package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lossdesk/export"
	"lossdesk/pkg/derive"
	"lossdesk/store"
)

type server struct {
	store  store.Store
	log    *logrus.Logger
	webDir string
}

func (s *server) setupRoutes(r *gin.Engine) {
	r.StaticFile("/", filepath.Join(s.webDir, "index.html"))
	r.GET("/healthz", s.healthHandler)
	r.POST("/reports", s.createReportHandler)
	r.GET("/reports", s.listReportsHandler)
	r.PUT("/reports/:id", s.updateReportHandler)
	r.DELETE("/reports/:id", s.deleteReportHandler)
	r.GET("/reports/export", s.exportReportsHandler)
}

// flexString accepts both JSON strings and bare numbers: the web form posts
// everything as strings while API clients tend to send amounts as numbers.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*s = flexString(t)
	case float64:
		*s = flexString(strconv.FormatFloat(t, 'f', -1, 64))
	case nil:
		*s = ""
	default:
		return errors.New("expected string or number")
	}
	return nil
}

type reportRequest struct {
	Manager    string     `json:"manager" binding:"required"`
	Restaurant string     `json:"restaurant" binding:"required"`
	Reason     string     `json:"reason" binding:"required"`
	Amount     flexString `json:"amount" binding:"required"`
	Start      string     `json:"start"`
	End        string     `json:"end"`
	Comment    string     `json:"comment"`
	// RequestID lets clients supply their own idempotency key; otherwise the
	// store derives one from the normalized field content.
	RequestID string `json:"request_id"`
}

func (r reportRequest) toInput() store.Input {
	return store.Input{
		Manager:    r.Manager,
		Restaurant: r.Restaurant,
		Reason:     r.Reason,
		Amount:     string(r.Amount),
		Start:      r.Start,
		End:        r.End,
		Comment:    r.Comment,
		Identity:   r.RequestID,
	}
}

func (s *server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// createReportHandler stores a submission idempotently: retrying the same
// form content answers with the already-stored row.
func (s *server) createReportHandler(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := s.store.Create(c.Request.Context(), req.toInput())
	if err != nil {
		s.renderStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (s *server) listReportsHandler(c *gin.Context) {
	rows, err := s.store.List(c.Request.Context())
	if err != nil {
		s.renderStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *server) updateReportHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := s.store.Update(c.Request.Context(), uint(id), req.toInput())
	if err != nil {
		s.renderStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (s *server) deleteReportHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.store.Delete(c.Request.Context(), uint(id)); err != nil {
		s.renderStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) exportReportsHandler(c *gin.Context) {
	reports, err := s.store.List(c.Request.Context())
	if err != nil {
		s.renderStoreError(c, err)
		return
	}
	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", `attachment; filename="loss-reports.xlsx"`)
	if err := export.WriteXLSX(c.Writer, export.Rows(reports)); err != nil {
		// headers are out already; log and let the client see a broken file
		s.log.WithError(err).Error("xlsx write failed")
	}
}

func (s *server) renderStoreError(c *gin.Context, err error) {
	var verr *derive.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
	case errors.Is(err, store.ErrStorageUnavailable):
		s.log.WithError(err).Error("storage unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable, try again later"})
	default:
		s.log.WithError(err).Error("unexpected store error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
