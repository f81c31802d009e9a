package main

import (
	"encoding/gob"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"examgen"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

// recentExamLimit caps how many exam IDs a session remembers.
const recentExamLimit = 10

type Server struct {
	cfg       examgen.Config
	db        *examgen.DB
	store     *sessions.CookieStore
	templates map[string]*template.Template
}

func init() {
	gob.Register([]string{})
}

func main() {
	cfg := examgen.LoadConfig()
	examgen.SetVerbose(cfg.Debug)

	if !cfg.IsConfigured() {
		log.Printf("Azure OpenAI is not configured; all questions will use static fallbacks")
	}

	db, err := examgen.OpenDB("./exams.db")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.CloseDB()

	if err := db.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	sessionKey := os.Getenv("SESSION_KEY")
	if sessionKey == "" {
		sessionKey = "exam-generator-dev-key"
	}
	store := sessions.NewCookieStore([]byte(sessionKey))

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"printf": fmt.Sprintf,
		"pct": func(count, total int) float64 {
			if total == 0 {
				return 0
			}
			return float64(count) / float64(total) * 100
		},
		"imgsrc": func(b64 string) template.URL {
			return template.URL("data:image/png;base64," + b64)
		},
	}

	templates := make(map[string]*template.Template)
	templateFiles := []struct {
		name string
		file string
	}{
		{"home", "templates/home.html"},
		{"new_exam", "templates/new_exam.html"},
		{"generating", "templates/generating.html"},
		{"exam", "templates/exam.html"},
	}

	for _, tmpl := range templateFiles {
		templates[tmpl.name] = template.Must(template.New(tmpl.name).Funcs(funcMap).ParseFiles("templates/base.html", tmpl.file))
	}

	server := &Server{
		cfg:       cfg,
		db:        db,
		store:     store,
		templates: templates,
	}

	r := mux.NewRouter()
	r.HandleFunc("/", server.handleHome).Methods("GET")
	r.HandleFunc("/new", server.handleNewExam).Methods("GET")
	r.HandleFunc("/generate", server.handleGenerate).Methods("POST")
	r.HandleFunc("/exam/{id}", server.handleExam).Methods("GET")
	r.HandleFunc("/exam/{id}/download/{format}", server.handleDownload).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8180"
	}

	log.Printf("Starting server on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	exams, err := s.db.GetExams(0)
	if err != nil {
		log.Printf("Failed to get exams: %v", err)
		http.Error(w, "Failed to get exams", http.StatusInternalServerError)
		return
	}

	err = s.templates["home"].ExecuteTemplate(w, "base.html", map[string]interface{}{
		"Exams":  exams,
		"Recent": s.recentExams(r),
	})
	if err != nil {
		log.Printf("Template error in home: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (s *Server) handleNewExam(w http.ResponseWriter, r *http.Request) {
	err := s.templates["new_exam"].ExecuteTemplate(w, "base.html", map[string]interface{}{
		"DefaultTotal":     s.cfg.DefaultQuestionCount,
		"TypeRatios":       examgen.DefaultTypeRatios,
		"DifficultyRatios": examgen.DefaultDifficultyRatios,
		"DefaultVisual":    examgen.DefaultVisualRatio,
		"Configured":       s.cfg.IsConfigured(),
	})
	if err != nil {
		log.Printf("Template error in new_exam: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = "Business Application 모델링 문제집"
	}

	req := examgen.GenerationRequest{
		TotalQuestions: formInt(r, "total_questions", s.cfg.DefaultQuestionCount),
		TypeRatios: examgen.TypeRatios{
			MultipleChoice: formInt(r, "mc_ratio", examgen.DefaultTypeRatios.MultipleChoice),
			ShortAnswer:    formInt(r, "sa_ratio", examgen.DefaultTypeRatios.ShortAnswer),
			Essay:          formInt(r, "essay_ratio", examgen.DefaultTypeRatios.Essay),
		},
		DifficultyRatios: examgen.DifficultyRatios{
			Easy:   formInt(r, "easy_ratio", examgen.DefaultDifficultyRatios.Easy),
			Medium: formInt(r, "medium_ratio", examgen.DefaultDifficultyRatios.Medium),
			Hard:   formInt(r, "hard_ratio", examgen.DefaultDifficultyRatios.Hard),
		},
		VisualRatio: formInt(r, "visual_ratio", examgen.DefaultVisualRatio),
	}
	if req.TotalQuestions <= 0 {
		req.TotalQuestions = s.cfg.DefaultQuestionCount
	}

	// PDF upload is optional; without source text every question falls back
	// to its static template.
	file, header, err := r.FormFile("source_pdf")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			http.Error(w, "Failed to read uploaded file", http.StatusBadRequest)
			return
		}
		text, extractErr := examgen.ExtractPDFText(data)
		if extractErr != nil {
			log.Printf("PDF extraction failed for %s: %v", header.Filename, extractErr)
		} else {
			req.SourceText = text
			req.SourceName = header.Filename
		}
	}

	examID := uuid.NewString()
	exam := &examgen.Exam{
		ID:             examID,
		Title:          title,
		SourceName:     req.SourceName,
		TotalQuestions: req.TotalQuestions,
		CreatedAt:      time.Now(),
		Status:         examgen.StatusGenerating,
	}

	if err := s.db.CreateExam(exam, req.VisualRatio); err != nil {
		log.Printf("Failed to create exam: %v", err)
		http.Error(w, "Failed to create exam", http.StatusInternalServerError)
		return
	}

	go s.db.GenerateExam(s.cfg, examID, req)

	s.rememberExam(w, r, examID)
	http.Redirect(w, r, "/exam/"+examID, http.StatusSeeOther)
}

func (s *Server) handleExam(w http.ResponseWriter, r *http.Request) {
	examID := mux.Vars(r)["id"]

	exam, err := s.db.GetExam(examID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if exam.Status == examgen.StatusGenerating {
		done, err := s.db.CountQuestions(examID)
		if err != nil {
			log.Printf("Failed to count questions: %v", err)
			done = 0
		}
		err = s.templates["generating"].ExecuteTemplate(w, "base.html", map[string]interface{}{
			"Exam": exam,
			"Done": done,
		})
		if err != nil {
			log.Printf("Template error in generating: %v", err)
			http.Error(w, "Template error", http.StatusInternalServerError)
		}
		return
	}

	questions, err := s.db.GetQuestions(examID)
	if err != nil {
		log.Printf("Failed to get questions: %v", err)
		http.Error(w, "Failed to get questions", http.StatusInternalServerError)
		return
	}

	err = s.templates["exam"].ExecuteTemplate(w, "base.html", map[string]interface{}{
		"Exam":      exam,
		"Questions": questions,
		"Stats":     examgen.GenerateStatistics(questions),
	})
	if err != nil {
		log.Printf("Template error in exam: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	examID := vars["id"]
	format := vars["format"]

	exam, err := s.db.GetExam(examID)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if exam.Status != examgen.StatusCompleted {
		http.Error(w, "Exam is not ready yet", http.StatusConflict)
		return
	}

	questions, err := s.db.GetQuestions(examID)
	if err != nil {
		log.Printf("Failed to get questions: %v", err)
		http.Error(w, "Failed to get questions", http.StatusInternalServerError)
		return
	}

	pdfFormat := examgen.FormatSeparated
	if r.URL.Query().Get("layout") == "integrated" {
		pdfFormat = examgen.FormatIntegrated
	}

	var data []byte
	var filename, contentType string
	now := time.Now()

	switch format {
	case "json":
		data, err = examgen.BuildJSON(questions)
		filename = examgen.TimestampFilename("BA_questions", "json", now)
		contentType = "application/json; charset=utf-8"
	case "stats":
		data, err = examgen.BuildStatsJSON(questions)
		filename = examgen.TimestampFilename("BA_question_stats", "json", now)
		contentType = "application/json; charset=utf-8"
	case "xlsx":
		data, err = examgen.BuildExcel(questions)
		filename = examgen.TimestampFilename("BA_questions", "xlsx", now)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, err = examgen.BuildPDF(questions, pdfFormat)
		filename = examgen.TimestampFilename("BA_questions", "pdf", now)
		contentType = "application/pdf"
	case "zip":
		data, err = examgen.BuildZip(questions, pdfFormat)
		filename = examgen.TimestampFilename("BA_exam_package", "zip", now)
		contentType = "application/zip"
	default:
		http.NotFound(w, r)
		return
	}

	if err != nil {
		log.Printf("Failed to build %s export for exam %s: %v", format, examID, err)
		http.Error(w, "Failed to build export", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// recentExams returns the exam IDs this browser session created, newest first.
func (s *Server) recentExams(r *http.Request) []string {
	session, _ := s.store.Get(r, "exam-session")
	if recent, ok := session.Values["recent"].([]string); ok {
		return recent
	}
	return nil
}

func (s *Server) rememberExam(w http.ResponseWriter, r *http.Request, examID string) {
	session, _ := s.store.Get(r, "exam-session")
	recent, _ := session.Values["recent"].([]string)
	recent = append([]string{examID}, recent...)
	if len(recent) > recentExamLimit {
		recent = recent[:recentExamLimit]
	}
	session.Values["recent"] = recent
	if err := session.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}
}

func formInt(r *http.Request, field string, fallback int) int {
	v, err := strconv.Atoi(r.FormValue(field))
	if err != nil {
		return fallback
	}
	return v
}
