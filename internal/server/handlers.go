package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/WagnerRodrigues181/nutri-lens/internal/i18n"
	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "failed to encode response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, body errorBody) {
	respondWithJSON(w, code, body)
}

// fail maps service errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		kind := "invalid_shape"
		if errors.Is(err, service.ErrOutOfRange) {
			kind = "out_of_range"
		}
		respondWithError(w, http.StatusBadRequest, errorBody{Error: err.Error(), Field: verr.Field, Kind: kind})
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		s.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		respondWithError(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &service.ValidationError{Field: "body", Kind: service.ErrInvalidShape, Msg: fmt.Sprintf("invalid json: %v", err)}
	}
	return nil
}

// parseDateParam accepts YYYY-MM-DD or "today".
func (s *Server) parseDateParam(value string) (string, error) {
	if value == "" || value == "today" {
		return s.now().Format(model.DayLayout), nil
	}
	if _, err := time.Parse(model.DayLayout, value); err != nil {
		return "", &service.ValidationError{Field: "date", Kind: service.ErrInvalidShape, Msg: fmt.Sprintf("invalid date %q, use YYYY-MM-DD or today", value)}
	}
	return value, nil
}

func (s *Server) localeFor(r *http.Request) (i18n.Locale, error) {
	override := r.URL.Query().Get("locale")
	if override == "" {
		override = s.locale
	}
	l, err := service.ResolveLocale(s.db, override)
	if err != nil {
		return "", &service.ValidationError{Field: "locale", Kind: service.ErrInvalidShape, Msg: err.Error()}
	}
	return l, nil
}

func (s *Server) dayReport(r *http.Request, date string) (*service.DayStatus, error) {
	l, err := s.localeFor(r)
	if err != nil {
		return nil, err
	}
	return service.DayReport(s.db, service.ReportInput{Date: date, Now: s.now(), Locale: l})
}

// publishDay pushes the day's fresh report to dashboard clients.
func (s *Server) publishDay(r *http.Request, date string) {
	if s.hub.Len() == 0 {
		return
	}
	report, err := s.dayReport(r, date)
	if err != nil {
		s.log.Warn("build day report for websocket", zap.String("date", date), zap.Error(err))
		return
	}
	s.hub.Broadcast(Message{Action: ActionDay, Data: report})
}

func (s *Server) getDay(w http.ResponseWriter, r *http.Request) {
	date, err := s.parseDateParam(chi.URLParam(r, "date"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	report, err := s.dayReport(r, date)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

func (s *Server) getInsights(w http.ResponseWriter, r *http.Request) {
	date, err := s.parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	report, err := s.dayReport(r, date)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report.Insights)
}

type mealRequest struct {
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Calories  float64    `json:"calories"`
	Protein   float64    `json:"protein"`
	Carbs     float64    `json:"carbs"`
	Fat       float64    `json:"fat"`
	Date      string     `json:"date"`
	Timestamp *time.Time `json:"timestamp"`
}

type mealPatch struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	Date     *string  `json:"date"`
}

func (s *Server) listMeals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.fail(w, r, &service.ValidationError{Field: "limit", Kind: service.ErrInvalidShape, Msg: "must be a non-negative integer"})
			return
		}
		limit = n
	}
	meals, err := service.ListMeals(s.db, service.MealFilter{
		Date:     q.Get("date"),
		FromDate: q.Get("from"),
		ToDate:   q.Get("to"),
		Category: q.Get("category"),
		Limit:    limit,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, meals)
}

func (s *Server) createMeal(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	loggedAt := s.now()
	if req.Timestamp != nil {
		loggedAt = *req.Timestamp
	}
	meal, err := service.AddMeal(s.db, service.MealInput{
		Name:     req.Name,
		Category: req.Category,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Date:     req.Date,
		LoggedAt: loggedAt,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info("meal added", zap.String("id", meal.ID), zap.String("date", meal.Date))
	respondWithJSON(w, http.StatusCreated, meal)
	s.publishDay(r, meal.Date)
}

func (s *Server) updateMeal(w http.ResponseWriter, r *http.Request) {
	var req mealPatch
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	before, err := service.GetMeal(s.db, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	meal, err := service.UpdateMeal(s.db, id, service.MealUpdate{
		Name:     req.Name,
		Category: req.Category,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Date:     req.Date,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, meal)
	s.publishDay(r, meal.Date)
	if before.Date != meal.Date {
		s.publishDay(r, before.Date)
	}
}

func (s *Server) deleteMeal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	meal, err := service.GetMeal(s.db, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := service.DeleteMeal(s.db, id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	s.publishDay(r, meal.Date)
}

// waterRequest sets the total with Liters or adjusts it with Add.
type waterRequest struct {
	Liters *float64 `json:"liters"`
	Add    *float64 `json:"add"`
}

func (s *Server) putWater(w http.ResponseWriter, r *http.Request) {
	date, err := s.parseDateParam(chi.URLParam(r, "date"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req waterRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	var total float64
	switch {
	case req.Liters != nil && req.Add == nil:
		total = *req.Liters
		err = service.SetWater(s.db, date, total)
	case req.Add != nil && req.Liters == nil:
		total, err = service.AddWater(s.db, date, *req.Add)
	default:
		err = &service.ValidationError{Field: "body", Kind: service.ErrInvalidShape, Msg: "set exactly one of liters or add"}
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"date": date, "water": total})
	s.publishDay(r, date)
}

func (s *Server) getGoals(w http.ResponseWriter, r *http.Request) {
	date, err := s.parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	goals, err := service.CurrentGoals(s.db, date)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, goals)
}

type goalsRequest struct {
	model.DailyGoals
	EffectiveDate string `json:"effectiveDate"`
}

func (s *Server) putGoals(w http.ResponseWriter, r *http.Request) {
	var req goalsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	date, err := s.parseDateParam(strings.TrimSpace(req.EffectiveDate))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := service.SetGoals(s.db, service.SetGoalsInput{Goals: req.DailyGoals, EffectiveDate: date}); err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, req.DailyGoals)
	s.publishDay(r, s.now().Format(model.DayLayout))
}

func (s *Server) getGoalHistory(w http.ResponseWriter, r *http.Request) {
	history, err := service.GoalHistory(s.db)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, history)
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	favorites := r.URL.Query().Get("favorites") == "true"
	list, err := service.ListTemplates(s.db, favorites)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

func (s *Server) useTemplate(w http.ResponseWriter, r *http.Request) {
	date, err := s.parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	meal, err := service.AddMealFromTemplate(s.db, chi.URLParam(r, "ref"), date, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, meal)
	s.publishDay(r, meal.Date)
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	history, err := service.LoadHistory(s.db, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, history)
}

func (s *Server) getStatistics(w http.ResponseWriter, r *http.Request) {
	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.fail(w, r, &service.ValidationError{Field: "days", Kind: service.ErrInvalidShape, Msg: "must be an integer"})
			return
		}
		days = n
	}
	stats, err := service.StatisticsReport(s.db, days, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

func (s *Server) getStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := service.StreakReport(s.db, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, streak)
}

func (s *Server) getAchievements(w http.ResponseWriter, r *http.Request) {
	l, err := s.localeFor(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	list, err := service.AchievementsReport(s.db, l, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

func (s *Server) getExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	file, err := service.ExportJSON(s.db, service.ExportOptions{From: q.Get("from"), To: q.Get("to"), Now: s.now()})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="nutri-lens-%s.json"`, s.now().Format(model.DayLayout)))
	respondWithJSON(w, http.StatusOK, file)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	s.hub.Add(conn)
	defer s.hub.Remove(conn)

	if report, err := s.dayReport(r, s.now().Format(model.DayLayout)); err == nil {
		if err := s.hub.Send(conn, Message{Action: ActionDay, Data: report}); err != nil {
			return
		}
	} else {
		s.log.Warn("build initial day report", zap.Error(err))
	}

	// Clients only listen; reading keeps control frames flowing and notices
	// the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
