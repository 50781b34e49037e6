package handlers

import (
	"errors"
	"net/http"

	"vacuum_packaging/internal/models"
	"vacuum_packaging/internal/packaging"
	"vacuum_packaging/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK       = "ok"
	statusAccepted = "accepted"

	errGetState         = "failed to load state"
	errStartPackaging   = "failed to start packaging"
	errInvalidBodyPref  = "invalid body: "
	errMachineBusy      = "machine is busy with another run"
	errConfigRejected   = "configuration rejected"
	errShuttingDown     = "service is shutting down"
	errMaterialRequired = "query parameter 'material' is required"
)

// ProductRequest describes the goods to pack.
type ProductRequest struct {
	Name                  string  `json:"name" binding:"required" example:"Frozen fish fillet"`
	WeightG               float64 `json:"weight_g" binding:"gt=0" example:"500"`
	MoisturePct           float64 `json:"moisture_pct" binding:"gte=0,lte=100" example:"75"`
	RequiresRefrigeration bool    `json:"requires_refrigeration" example:"true"`
	// RFC3339 or YYYY-MM-DD
	PackagingDate string `json:"packaging_date,omitempty" example:"2025-06-01"`
	ExpiryDate    string `json:"expiry_date,omitempty" example:"2025-08-30"`
}

// SettingsRequest is the machine configuration for one run.
type SettingsRequest struct {
	// PA_PE, PET_PE, PVDC, AL_PE, HIGH_BARRIER
	Material string `json:"material" binding:"required,material" example:"HIGH_BARRIER"`
	// LIGHT, MEDIUM, HIGH, ULTRA or the percentage 80/90/95/99
	VacuumLevel         string  `json:"vacuum_level" binding:"required,vacuum_level" example:"HIGH"`
	SealingTemperatureC float64 `json:"sealing_temperature_c" example:"150"`
	SealingTimeMS       int64   `json:"sealing_time_ms" binding:"gt=0,lte=60000" example:"1200"`
	UseNitrogenFlushing bool    `json:"use_nitrogen_flushing" example:"true"`
}

// PackagingRequest is the body of validate and start.
type PackagingRequest struct {
	Product  ProductRequest  `json:"product"`
	Settings SettingsRequest `json:"settings"`
}

func (r PackagingRequest) toModels() (models.Product, models.PackagingSettings, error) {
	p := models.Product{
		Name:                  r.Product.Name,
		WeightG:               r.Product.WeightG,
		MoisturePct:           r.Product.MoisturePct,
		RequiresRefrigeration: r.Product.RequiresRefrigeration,
	}
	var err error
	if r.Product.PackagingDate != "" {
		if p.PackagingDate, err = parseQueryTime(r.Product.PackagingDate); err != nil {
			return models.Product{}, models.PackagingSettings{}, err
		}
	}
	if r.Product.ExpiryDate != "" {
		if p.ExpiryDate, err = parseQueryTime(r.Product.ExpiryDate); err != nil {
			return models.Product{}, models.PackagingSettings{}, err
		}
	}

	material, err := models.ParseMaterial(r.Settings.Material)
	if err != nil {
		return models.Product{}, models.PackagingSettings{}, err
	}
	level, err := models.ParseVacuumLevel(r.Settings.VacuumLevel)
	if err != nil {
		return models.Product{}, models.PackagingSettings{}, err
	}
	sealing, err := models.SealingTimeFromMillis(r.Settings.SealingTimeMS)
	if err != nil {
		return models.Product{}, models.PackagingSettings{}, err
	}
	s := models.PackagingSettings{
		Material:            material,
		VacuumLevel:         level,
		SealingTemperatureC: r.Settings.SealingTemperatureC,
		SealingTime:         sealing,
		UseNitrogenFlushing: r.Settings.UseNitrogenFlushing,
	}
	return p, s, nil
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// bindPackagingRequest binds and converts the body, answering 400 on failure.
func (h *Handler) bindPackagingRequest(c *gin.Context) (models.Product, models.PackagingSettings, bool) {
	var req PackagingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return models.Product{}, models.PackagingSettings{}, false
	}
	p, s, err := req.toModels()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return models.Product{}, models.PackagingSettings{}, false
	}
	return p, s, true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Validate configuration
// @Description  Dry run of the safety rules; the machine is not touched.
// @Tags         packaging
// @Accept       json
// @Produce      json
// @Param        body  body      PackagingRequest  true  "Product and settings"
// @Success      200   {object}  service.ValidationReport
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/packaging/validate [post]
// @Security     BearerAuth
func (h *Handler) validateConfiguration(c *gin.Context) {
	p, s, ok := h.bindPackagingRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.services.Packaging.Validate(p, s))
}

// @Summary      Start packaging
// @Description  Validates the configuration and starts a run in the background.
// @Tags         packaging
// @Accept       json
// @Produce      json
// @Param        body  body      PackagingRequest  true  "Product and settings"
// @Success      202   {object}  map[string]interface{}  "status, run"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]interface{}  "error, violations"
// @Failure      500   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/packaging/start [post]
// @Security     BearerAuth
func (h *Handler) startPackaging(c *gin.Context) {
	p, s, ok := h.bindPackagingRequest(c)
	if !ok {
		return
	}

	run, err := h.services.Packaging.Start(c.Request.Context(), c.GetInt(operatorCtxKey), p, s)
	switch {
	case err == nil:
		c.JSON(http.StatusAccepted, gin.H{"status": statusAccepted, "run": run})
	case errors.Is(err, packaging.ErrConfigurationRejected):
		violations := make([]string, 0)
		for _, v := range packaging.Violations(err) {
			violations = append(violations, v.Error())
		}
		if h.log != nil {
			h.log.Infow("packaging_start_rejected", "product", p.Name, "violations", violations)
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errConfigRejected, "violations": violations})
	case errors.Is(err, packaging.ErrMachineBusy):
		c.JSON(http.StatusConflict, gin.H{"error": errMachineBusy})
	case errors.Is(err, service.ErrShuttingDown):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errShuttingDown})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errStartPackaging, "packaging_start_failed", err, "product", p.Name)
	}
}

// @Summary      Get machine state
// @Tags         packaging
// @Produce      json
// @Success      200  {object}  models.MachineState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/packaging/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "packaging_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Recommended sealing time
// @Tags         packaging
// @Produce      json
// @Param        material  query     string  true  "Film material"  Enums(PA_PE,PET_PE,PVDC,AL_PE,HIGH_BARRIER)
// @Success      200       {object}  service.Recommendation
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Router       /api/v1/packaging/recommendation [get]
// @Security     BearerAuth
func (h *Handler) getRecommendation(c *gin.Context) {
	raw := c.Query("material")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMaterialRequired})
		return
	}
	material, err := models.ParseMaterial(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.services.Packaging.Recommend(material)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}
