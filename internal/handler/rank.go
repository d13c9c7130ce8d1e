package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripranker/internal/logging"
	"github.com/dharmasatrya/tripranker/internal/metrics"
	"github.com/dharmasatrya/tripranker/internal/models"
	"github.com/dharmasatrya/tripranker/internal/ranking"
	"github.com/dharmasatrya/tripranker/internal/store"
)

type RankHandler struct {
	profiles store.ProfileStore
	workers  int
}

func NewRankHandler(profiles store.ProfileStore, workers int) *RankHandler {
	return &RankHandler{
		profiles: profiles,
		workers:  workers,
	}
}

func (h *RankHandler) RankFlights(c echo.Context) error {
	startTime := time.Now()

	var req models.FlightRankRequest
	if resp := bindAndValidate(c, &req); resp != nil {
		return c.JSON(resp.Code, resp)
	}

	return rank(c, h, startTime, rankInput[models.Candidate]{
		domain:      "flight",
		userID:      req.UserID,
		preferences: req.Preferences,
		candidates:  req.Candidates,
		strategy: func(p models.PreferenceProfile) ranking.Strategy[models.Candidate] {
			return ranking.NewFlightStrategy(p)
		},
	})
}

func (h *RankHandler) RankHotels(c echo.Context) error {
	startTime := time.Now()

	var req models.HotelRankRequest
	if resp := bindAndValidate(c, &req); resp != nil {
		return c.JSON(resp.Code, resp)
	}

	return rank(c, h, startTime, rankInput[models.HotelCandidate]{
		domain:      "hotel",
		userID:      req.UserID,
		preferences: req.Preferences,
		candidates:  req.Candidates,
		strategy: func(p models.PreferenceProfile) ranking.Strategy[models.HotelCandidate] {
			return ranking.NewHotelStrategy(p)
		},
	})
}

// DefaultPreferences returns the profile applied when a request carries no
// preferences and the store has none for the user.
func DefaultPreferences(c echo.Context) error {
	return c.JSON(http.StatusOK, models.DefaultPreferenceProfile())
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type rankInput[C any] struct {
	domain      string
	userID      string
	preferences *models.PreferenceProfile
	candidates  []C
	strategy    func(models.PreferenceProfile) ranking.Strategy[C]
}

func bindAndValidate(c echo.Context, req interface{}) *models.ErrorResponse {
	if err := c.Bind(req); err != nil {
		return &models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + bindMessage(err),
			Code:    http.StatusBadRequest,
		}
	}
	if err := c.Validate(req); err != nil {
		return &models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		}
	}
	return nil
}

func rank[C any](c echo.Context, h *RankHandler, startTime time.Time, in rankInput[C]) error {
	ctx := c.Request().Context()

	profile, source, err := h.resolveProfile(ctx, in.userID, in.preferences)
	if err != nil {
		metrics.RankRequests.WithLabelValues(in.domain, "profile_error").Inc()
		logging.Error().Err(err).Str("user_id", in.userID).Msg("profile lookup failed")
		return respondError(c, http.StatusInternalServerError, "profile_error",
			"Failed to load preference profile")
	}

	rankStart := time.Now()
	result, err := ranking.Rank(in.candidates, in.strategy(profile), ranking.WithWorkers(h.workers))
	if err != nil {
		metrics.RankRequests.WithLabelValues(in.domain, "invalid_candidate").Inc()
		return respondError(c, http.StatusBadRequest, "invalid_candidate", err.Error())
	}
	metrics.ObserveRank(in.domain, len(result.InPreference), len(result.OutOfPreference),
		time.Since(rankStart).Seconds())

	logging.Debug().
		Str("domain", in.domain).
		Str("profile_source", string(source)).
		Int("in_preference", len(result.InPreference)).
		Int("out_of_preference", len(result.OutOfPreference)).
		Msg("ranked candidates")

	return c.JSON(http.StatusOK, models.RankResponse[C]{
		Metadata: models.RankMetadata{
			TotalCandidates:      len(in.candidates),
			InPreferenceCount:    len(result.InPreference),
			OutOfPreferenceCount: len(result.OutOfPreference),
			RankTimeMs:           time.Since(startTime).Milliseconds(),
			ProfileSource:        source,
		},
		InPreference:    result.InPreference,
		OutOfPreference: result.OutOfPreference,
	})
}

// resolveProfile prefers inline preferences, then the stored profile, then
// the defaults.
func (h *RankHandler) resolveProfile(ctx context.Context, userID string, inline *models.PreferenceProfile) (models.PreferenceProfile, models.ProfileSource, error) {
	if inline != nil {
		metrics.ProfileLookups.WithLabelValues(string(models.ProfileFromRequest)).Inc()
		return *inline, models.ProfileFromRequest, nil
	}

	if userID != "" {
		profile, found, err := h.profiles.Get(ctx, userID)
		if err != nil {
			metrics.ProfileLookups.WithLabelValues("error").Inc()
			return models.PreferenceProfile{}, "", err
		}
		if found {
			metrics.ProfileLookups.WithLabelValues(string(models.ProfileFromStore)).Inc()
			return profile, models.ProfileFromStore, nil
		}
	}

	metrics.ProfileLookups.WithLabelValues(string(models.ProfileFromDefault)).Inc()
	return models.DefaultPreferenceProfile(), models.ProfileFromDefault, nil
}

func respondError(c echo.Context, code int, kind, message string) error {
	return c.JSON(code, models.ErrorResponse{
		Error:   kind,
		Message: message,
		Code:    code,
	})
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			return he.Internal.Error()
		}
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return err.Error()
}
