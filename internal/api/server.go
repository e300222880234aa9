// Package api exposes the HTTP surface consumed by the GymFlow client:
// CRUD for the workout domain, settings, and the cron relay endpoints that
// drive the reminder engine from an external scheduler.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/engine"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
)

type ExerciseStore interface {
	Create(ctx context.Context, exercise *models.Exercise) error
	List(ctx context.Context, category string) ([]*models.Exercise, error)
	GetByID(ctx context.Context, exerciseID int) (*models.Exercise, error)
	Update(ctx context.Context, exercise *models.Exercise) error
	Delete(ctx context.Context, exerciseID int) (bool, error)
}

type RoutineStore interface {
	Create(ctx context.Context, routine *models.Routine) error
	List(ctx context.Context) ([]*models.Routine, error)
	GetByID(ctx context.Context, routineID int) (*models.Routine, error)
	Update(ctx context.Context, routine *models.Routine) error
	Delete(ctx context.Context, routineID int) error
}

type SessionStore interface {
	Create(ctx context.Context, session *models.WorkoutSession) error
	List(ctx context.Context, limit int) ([]*models.WorkoutSession, error)
	GetByID(ctx context.Context, sessionID int) (*models.WorkoutSession, error)
	AddSet(ctx context.Context, sessionID int, set *models.SessionSet) error
	Complete(ctx context.Context, sessionID int, completedAt time.Time, notes string) error
	Delete(ctx context.Context, sessionID int) error
}

type ReminderStore interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	List(ctx context.Context) ([]*models.Reminder, error)
	GetByID(ctx context.Context, reminderID int) (*models.Reminder, error)
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, reminderID int) error
	DeleteByType(ctx context.Context, reminderType string) error
}

type HydrationStore interface {
	GetOrCreateSettings(ctx context.Context) (*models.HydrationSettings, error)
	UpdateSettings(ctx context.Context, settings *models.HydrationSettings) error
	AddLog(ctx context.Context, entry *models.HydrationLog) error
	ListLogs(ctx context.Context, from, to time.Time) ([]*models.HydrationLog, error)
}

type TelegramSettingsStore interface {
	GetOrCreate(ctx context.Context) (*models.TelegramSettings, error)
	Update(ctx context.Context, settings *models.TelegramSettings) error
}

type UserSettingsStore interface {
	GetOrCreate(ctx context.Context) (*models.UserSettings, error)
	Update(ctx context.Context, settings *models.UserSettings) error
}

// EngineControl is the slice of the reminder engine the API drives.
type EngineControl interface {
	Start(ctx context.Context) error
	Stop()
	Pause()
	Resume()
	State() engine.State
	Notify()
	CheckReminders(ctx context.Context, now time.Time) error
	CheckMotivation(ctx context.Context, now time.Time) error
}

// Server wires the stores, the engine and the relay configuration into an
// http.Handler.
type Server struct {
	exercises        ExerciseStore
	routines         RoutineStore
	sessions         SessionStore
	reminders        ReminderStore
	hydration        HydrationStore
	telegramSettings TelegramSettingsStore
	userSettings     UserSettingsStore
	engine           EngineControl
	newSender        engine.SenderFactory
	fallbackToken    string
	cronSecret       string
}

type Deps struct {
	Exercises        ExerciseStore
	Routines         RoutineStore
	Sessions         SessionStore
	Reminders        ReminderStore
	Hydration        HydrationStore
	TelegramSettings TelegramSettingsStore
	UserSettings     UserSettingsStore
	Engine           EngineControl
	NewSender        engine.SenderFactory
	FallbackToken    string
	CronSecret       string
}

func NewServer(deps Deps) *Server {
	return &Server{
		exercises:        deps.Exercises,
		routines:         deps.Routines,
		sessions:         deps.Sessions,
		reminders:        deps.Reminders,
		hydration:        deps.Hydration,
		telegramSettings: deps.TelegramSettings,
		userSettings:     deps.UserSettings,
		engine:           deps.Engine,
		newSender:        deps.NewSender,
		fallbackToken:    deps.FallbackToken,
		cronSecret:       deps.CronSecret,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("GET /api/exercises", s.listExercisesHandler)
	mux.HandleFunc("POST /api/exercises", s.createExerciseHandler)
	mux.HandleFunc("GET /api/exercises/{id}", s.getExerciseHandler)
	mux.HandleFunc("PUT /api/exercises/{id}", s.updateExerciseHandler)
	mux.HandleFunc("DELETE /api/exercises/{id}", s.deleteExerciseHandler)

	mux.HandleFunc("GET /api/routines", s.listRoutinesHandler)
	mux.HandleFunc("POST /api/routines", s.createRoutineHandler)
	mux.HandleFunc("GET /api/routines/{id}", s.getRoutineHandler)
	mux.HandleFunc("PUT /api/routines/{id}", s.updateRoutineHandler)
	mux.HandleFunc("DELETE /api/routines/{id}", s.deleteRoutineHandler)

	mux.HandleFunc("GET /api/sessions", s.listSessionsHandler)
	mux.HandleFunc("POST /api/sessions", s.createSessionHandler)
	mux.HandleFunc("GET /api/sessions/{id}", s.getSessionHandler)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.deleteSessionHandler)
	mux.HandleFunc("POST /api/sessions/{id}/sets", s.addSessionSetHandler)
	mux.HandleFunc("POST /api/sessions/{id}/complete", s.completeSessionHandler)

	mux.HandleFunc("GET /api/reminders", s.listRemindersHandler)
	mux.HandleFunc("POST /api/reminders", s.createReminderHandler)
	mux.HandleFunc("PUT /api/reminders/{id}", s.updateReminderHandler)
	mux.HandleFunc("DELETE /api/reminders/{id}", s.deleteReminderHandler)

	mux.HandleFunc("GET /api/hydration/settings", s.getHydrationSettingsHandler)
	mux.HandleFunc("PUT /api/hydration/settings", s.updateHydrationSettingsHandler)
	mux.HandleFunc("GET /api/hydration/logs", s.listHydrationLogsHandler)
	mux.HandleFunc("POST /api/hydration/logs", s.addHydrationLogHandler)

	mux.HandleFunc("GET /api/telegram/settings", s.getTelegramSettingsHandler)
	mux.HandleFunc("PUT /api/telegram/settings", s.updateTelegramSettingsHandler)
	mux.HandleFunc("POST /api/telegram/test", s.testTelegramHandler)

	mux.HandleFunc("GET /api/settings", s.getUserSettingsHandler)
	mux.HandleFunc("PUT /api/settings", s.updateUserSettingsHandler)

	mux.HandleFunc("GET /api/engine/status", s.engineStatusHandler)
	mux.HandleFunc("POST /api/engine/pause", s.pauseEngineHandler)
	mux.HandleFunc("POST /api/engine/resume", s.resumeEngineHandler)

	mux.HandleFunc("POST /api/cron/check-reminders", s.requireCronAuth(s.cronCheckRemindersHandler))
	mux.HandleFunc("POST /api/cron/check-motivation", s.requireCronAuth(s.cronCheckMotivationHandler))

	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, success(map[string]string{"status": "ok"}))
}
