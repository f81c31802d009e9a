package examgen

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB is the exam archive connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens the exam archive.
func OpenDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db: db}, nil
}

// CloseDB closes the database connection
func (db *DB) CloseDB() error {
	return db.db.Close()
}

// CreateTables creates the necessary tables if they don't exist
func (db *DB) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS exams (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			source_name TEXT,
			total_questions INTEGER NOT NULL,
			visual_ratio INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'generating'
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			exam_id TEXT NOT NULL,
			question_num INTEGER NOT NULL,
			question_id TEXT NOT NULL,
			payload TEXT NOT NULL,
			PRIMARY KEY (exam_id, question_num),
			FOREIGN KEY (exam_id) REFERENCES exams(id)
		)`,
	}

	for _, query := range queries {
		if _, err := db.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// CreateExam inserts a new exam record.
func (db *DB) CreateExam(exam *Exam, visualRatio int) error {
	_, err := db.db.Exec(
		"INSERT INTO exams (id, title, source_name, total_questions, visual_ratio, created_at, status) VALUES (?, ?, ?, ?, ?, ?, ?)",
		exam.ID, exam.Title, exam.SourceName, exam.TotalQuestions, visualRatio, exam.CreatedAt, string(exam.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to create exam: %w", err)
	}
	return nil
}

// GetExam retrieves an exam by ID, without its questions.
func (db *DB) GetExam(id string) (*Exam, error) {
	var exam Exam
	var status string
	err := db.db.QueryRow(
		"SELECT id, title, source_name, total_questions, created_at, status FROM exams WHERE id = ?",
		id,
	).Scan(&exam.ID, &exam.Title, &exam.SourceName, &exam.TotalQuestions, &exam.CreatedAt, &status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("exam not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	exam.Status = ExamStatus(status)
	return &exam, nil
}

// GetExams retrieves all exams newest first, optionally limited by count.
func (db *DB) GetExams(limit int) ([]Exam, error) {
	query := "SELECT id, title, source_name, total_questions, created_at, status FROM exams ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get exams: %w", err)
	}
	defer rows.Close()

	var exams []Exam
	for rows.Next() {
		var exam Exam
		var status string
		err := rows.Scan(&exam.ID, &exam.Title, &exam.SourceName, &exam.TotalQuestions, &exam.CreatedAt, &status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exam: %w", err)
		}
		exam.Status = ExamStatus(status)
		exams = append(exams, exam)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exams: %w", err)
	}

	return exams, nil
}

// UpdateExamStatus updates the status of an exam.
func (db *DB) UpdateExamStatus(id string, status ExamStatus) error {
	_, err := db.db.Exec("UPDATE exams SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update exam status: %w", err)
	}
	return nil
}

// SaveQuestion stores a generated question under its exam. Rows are keyed by
// (exam_id, question_num); question_id is a display label drawn from a small
// range and is not unique. The full question is kept as a JSON payload so the
// schema survives format additions.
func (db *DB) SaveQuestion(examID string, questionNum int, q *Question) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal question %s: %w", q.QuestionID, err)
	}

	_, err = db.db.Exec(
		"INSERT INTO questions (exam_id, question_num, question_id, payload) VALUES (?, ?, ?, ?)",
		examID, questionNum, q.QuestionID, string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

// GetQuestions retrieves all questions for an exam in generation order.
func (db *DB) GetQuestions(examID string) ([]Question, error) {
	rows, err := db.db.Query(
		"SELECT payload FROM questions WHERE exam_id = ? ORDER BY question_num",
		examID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		var q Question
		if err := json.Unmarshal([]byte(payload), &q); err != nil {
			return nil, fmt.Errorf("failed to unmarshal question: %w", err)
		}
		questions = append(questions, q)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return questions, nil
}

// CountQuestions returns the number of questions stored for an exam.
func (db *DB) CountQuestions(examID string) (int, error) {
	var count int
	err := db.db.QueryRow("SELECT COUNT(*) FROM questions WHERE exam_id = ?", examID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// GenerateExam runs a full generation pass in the calling goroutine and
// streams each question into the archive. Intended to be launched with `go`
// by the web handler; the exam row flips to completed or failed at the end.
func (db *DB) GenerateExam(cfg Config, examID string, req GenerationRequest) {
	generator := NewExamGenerator(cfg)

	logger, err := NewGenerationLogger(examID, req)
	if err != nil {
		log.Printf("Failed to create logger for exam %s: %v", examID, err)
		// Continue without logging rather than failing
	} else {
		generator.SetLogger(logger)
		defer logger.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	questionNum := 1
	for q := range generator.GenerateExamStream(ctx, req) {
		if err := db.SaveQuestion(examID, questionNum, q); err != nil {
			log.Printf("Failed to store question %s: %v", q.QuestionID, err)
			continue
		}
		questionNum++
	}

	if ctx.Err() != nil {
		log.Printf("Exam %s generation timed out: %v", examID, ctx.Err())
		if err := db.UpdateExamStatus(examID, StatusFailed); err != nil {
			log.Printf("Failed to update exam status %s: %v", examID, err)
		}
		return
	}

	if err := db.UpdateExamStatus(examID, StatusCompleted); err != nil {
		log.Printf("Failed to update exam status to completed %s: %v", examID, err)
	}
}
