package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"vacuum_packaging/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errListRuns     = "failed to load runs"
	errGetRun       = "failed to load run"
	errRunNotFound  = "run not found"
	errLimitInvalid = "invalid 'limit'; use a positive integer"
)

// @Summary      List runs
// @Description  Newest first.
// @Tags         runs
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of runs (default 50, max 500)"
// @Success      200    {object}  map[string]interface{}  "count, runs"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/runs [get]
// @Security     BearerAuth
func (h *Handler) listRuns(c *gin.Context) {
	limit := 0
	if qs := c.Query("limit"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
			return
		}
		limit = n
	}

	runs, err := h.services.RunHistory.ListRuns(c.Request.Context(), limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListRuns, "runs_list_failed", err, "limit", limit)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(runs),
		"runs":  runs,
	})
}

// @Summary      Get run
// @Tags         runs
// @Produce      json
// @Param        id   path      string  true  "Run id"
// @Success      200  {object}  models.PackagingRun
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/runs/{id} [get]
// @Security     BearerAuth
func (h *Handler) getRun(c *gin.Context) {
	id := c.Param("id")
	run, err := h.services.RunHistory.GetRun(c.Request.Context(), id)
	if errors.Is(err, service.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": errRunNotFound})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetRun, "run_get_failed", err, "run_id", id)
		return
	}
	c.JSON(http.StatusOK, run)
}
