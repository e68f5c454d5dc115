package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"teamops-backend/internal/ai"
	"teamops-backend/internal/auth"
	"teamops-backend/internal/automation"
	"teamops-backend/internal/config"
	"teamops-backend/internal/db"
	"teamops-backend/internal/members"
	"teamops-backend/internal/notify"
	"teamops-backend/internal/reports"
	"teamops-backend/internal/tasks"
	"teamops-backend/internal/timelog"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment")
	}

	cfg := config.Load()

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		log.Fatal("❌ Failed to connect DB:", err)
	}
	defer database.Close()

	log.Println("✅ Connected to PostgreSQL!")

	secret := []byte(cfg.JWTSecret)
	authMW := auth.New(secret)

	twilio := notify.NewTwilioClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	if !cfg.SMSEnabled() {
		log.Println("[WARN] Twilio not configured, SMS runs in demo mode")
	}
	notifier := notify.NewService(database, twilio)

	assistant := ai.New(cfg.OpenAIKey, cfg.OpenAIModel)
	if !assistant.Enabled() {
		log.Println("[WARN] OPENAI_API_KEY not set, /jarvis is disabled")
	}

	mux := http.NewServeMux()

	// Health endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// ----- AUTH API -----
	mux.HandleFunc("/auth/register", auth.RegisterHandler(database, secret))
	mux.HandleFunc("/auth/login", auth.LoginHandler(database, secret))
	mux.HandleFunc("/auth/me", authMW.Wrap(auth.MeHandler(database)))
	mux.HandleFunc("/auth/logout", auth.LogoutHandler())

	// ----- TASKS API -----
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authMW.Wrap(tasks.ListHandler(database))(w, r)
		case http.MethodPost:
			authMW.Wrap(tasks.CreateHandler(database))(w, r)
		case http.MethodPut, http.MethodPatch:
			authMW.Wrap(tasks.UpdateHandler(database, notifier))(w, r)
		case http.MethodDelete:
			authMW.Wrap(tasks.DeleteHandler(database))(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/tasks/evaluate", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			authMW.Wrap(tasks.EvaluateHandler(database))(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// ----- MEMBERS API -----
	mux.HandleFunc("/members", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authMW.Wrap(members.ListHandler(database))(w, r)
		case http.MethodPost:
			authMW.Wrap(members.CreateHandler(database))(w, r)
		case http.MethodPut, http.MethodPatch:
			authMW.Wrap(members.UpdateHandler(database))(w, r)
		case http.MethodDelete:
			authMW.Wrap(members.DeleteHandler(database))(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// ----- TIME TRACKING API -----
	mux.HandleFunc("/time", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authMW.Wrap(timelog.ListHandler(database))(w, r)
		case http.MethodPost:
			authMW.Wrap(timelog.CreateHandler(database))(w, r)
		case http.MethodDelete:
			authMW.Wrap(timelog.DeleteHandler(database))(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/time/efficiency", authMW.Wrap(timelog.EfficiencyHandler(database)))

	// ----- AUTOMATION API -----
	mux.HandleFunc("/automation/sweep", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			authMW.Wrap(automation.SweepHandler(database, notifier))(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/automation/trigger", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			authMW.Wrap(automation.TriggerHandler(database, notifier))(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// ----- REPORTS API -----
	mux.HandleFunc("/dashboard", authMW.Wrap(reports.DashboardHandler(database, notifier)))
	mux.HandleFunc("/reports/monthly", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authMW.Wrap(reports.MonthlyListHandler(database))(w, r)
		case http.MethodPost:
			authMW.Wrap(reports.GenerateHandler(database, notifier))(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// ----- NOTIFICATIONS API -----
	mux.HandleFunc("/notifications", authMW.Wrap(func(w http.ResponseWriter, r *http.Request) {
		recent, err := notifier.Recent(r.Context(), 50)
		if err != nil {
			http.Error(w, "db query error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(recent)
	}))

	// ----- JARVIS API -----
	mux.HandleFunc("/jarvis", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			authMW.Wrap(ai.AskHandler(database, assistant))(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	log.Println("🚀 API server is running on " + cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, handler))
}
