package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/notify"
)

// ==================== Telegram settings ====================

func (s *Server) getTelegramSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.telegramSettings.GetOrCreate(r.Context())
	if err != nil {
		log.Printf("Failed to load telegram settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to load telegram settings"))
		return
	}
	// Never echo the token back to the client.
	settings.BotToken = ""
	writeJSON(w, http.StatusOK, success(settings))
}

type telegramSettingsRequest struct {
	Enabled                bool   `json:"enabled"`
	ChatID                 int64  `json:"chat_id"`
	BotToken               string `json:"bot_token"`
	DailyMotivationEnabled bool   `json:"daily_motivation_enabled"`
	DailyMotivationTime    string `json:"daily_motivation_time"`
	SetupCompleted         bool   `json:"setup_completed"`
}

func (s *Server) updateTelegramSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req telegramSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}
	if req.Enabled && req.ChatID == 0 {
		writeJSON(w, http.StatusBadRequest, failure("chat_id is required to enable notifications"))
		return
	}

	settings, err := s.telegramSettings.GetOrCreate(r.Context())
	if err != nil {
		log.Printf("Failed to load telegram settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to load telegram settings"))
		return
	}

	settings.Enabled = req.Enabled
	settings.ChatID = req.ChatID
	if req.BotToken != "" {
		settings.BotToken = req.BotToken
	}
	settings.DailyMotivationEnabled = req.DailyMotivationEnabled
	if req.DailyMotivationTime != "" {
		settings.DailyMotivationTime = req.DailyMotivationTime
	}
	settings.SetupCompleted = req.SetupCompleted

	if err := s.telegramSettings.Update(r.Context(), settings); err != nil {
		log.Printf("Failed to update telegram settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to update telegram settings"))
		return
	}

	// The engine gates on these settings: enabling arms it, disabling
	// shuts the loop down.
	if settings.Configured() {
		if err := s.engine.Start(r.Context()); err != nil {
			log.Printf("Failed to start reminder engine: %v", err)
		}
	} else {
		s.engine.Stop()
	}

	settings.BotToken = ""
	writeJSON(w, http.StatusOK, success(settings))
}

type telegramTestRequest struct {
	ChatID   int64  `json:"chat_id"`
	BotToken string `json:"bot_token"`
}

// testTelegramHandler sends a test message during the setup flow and maps
// typed transport failures to actionable user-facing errors.
func (s *Server) testTelegramHandler(w http.ResponseWriter, r *http.Request) {
	var req telegramTestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}

	chatID := req.ChatID
	token := req.BotToken
	if chatID == 0 || token == "" {
		settings, err := s.telegramSettings.GetOrCreate(r.Context())
		if err != nil {
			log.Printf("Failed to load telegram settings: %v", err)
			writeJSON(w, http.StatusInternalServerError, failure("failed to load telegram settings"))
			return
		}
		if chatID == 0 {
			chatID = settings.ChatID
		}
		if token == "" {
			token = settings.BotToken
		}
	}
	if token == "" {
		token = s.fallbackToken
	}
	if chatID == 0 || token == "" {
		writeJSON(w, http.StatusBadRequest, failure("chat_id and bot_token are required"))
		return
	}

	sender, err := s.newSender(token)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, failure(transportErrorMessage(err)))
		return
	}
	if err := sender.Send(chatID, "✅ **GymFlow connected!** You will receive your reminders here.", true); err != nil {
		writeJSON(w, http.StatusBadRequest, failure(transportErrorMessage(err)))
		return
	}
	writeJSON(w, http.StatusOK, success(map[string]string{"message": "test message sent"}))
}

func transportErrorMessage(err error) string {
	switch {
	case errors.Is(err, notify.ErrChatNotFound):
		return "chat not found: send /start to your bot first and verify the chat id"
	case errors.Is(err, notify.ErrBotBlocked):
		return "the bot was blocked by this chat: unblock it and try again"
	case errors.Is(err, notify.ErrInvalidToken):
		return "invalid bot token"
	default:
		return "failed to reach telegram, try again later"
	}
}

// ==================== User settings ====================

func (s *Server) getUserSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.userSettings.GetOrCreate(r.Context())
	if err != nil {
		log.Printf("Failed to load user settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to load user settings"))
		return
	}
	writeJSON(w, http.StatusOK, success(settings))
}

type userSettingsRequest struct {
	DisplayName         string `json:"display_name"`
	WeightUnit          string `json:"weight_unit"`
	Timezone            string `json:"timezone"`
	WeekStartsMonday    bool   `json:"week_starts_monday"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
}

func (s *Server) updateUserSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req userSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}
	if req.WeightUnit != models.UnitKilograms && req.WeightUnit != models.UnitPounds {
		writeJSON(w, http.StatusBadRequest, failure("weight_unit must be kg or lb"))
		return
	}

	settings, err := s.userSettings.GetOrCreate(r.Context())
	if err != nil {
		log.Printf("Failed to load user settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to load user settings"))
		return
	}

	settings.DisplayName = req.DisplayName
	settings.WeightUnit = req.WeightUnit
	if req.Timezone != "" {
		settings.Timezone = req.Timezone
	}
	settings.WeekStartsMonday = req.WeekStartsMonday
	settings.OnboardingCompleted = req.OnboardingCompleted

	if err := s.userSettings.Update(r.Context(), settings); err != nil {
		log.Printf("Failed to update user settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to update user settings"))
		return
	}
	writeJSON(w, http.StatusOK, success(settings))
}

// ==================== Engine control ====================

func (s *Server) engineStatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, success(map[string]string{"state": s.engine.State().String()}))
}

func (s *Server) pauseEngineHandler(w http.ResponseWriter, r *http.Request) {
	s.engine.Pause()
	writeJSON(w, http.StatusOK, success(map[string]string{"state": s.engine.State().String()}))
}

func (s *Server) resumeEngineHandler(w http.ResponseWriter, r *http.Request) {
	s.engine.Resume()
	writeJSON(w, http.StatusOK, success(map[string]string{"state": s.engine.State().String()}))
}
