package quiz

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/passagelab/studio/internal/passage"
)

// SQLStore persists quizzes with the span list and choice set as JSON
// columns. The SQL stays driver-neutral across sqlite and postgres.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutQuiz(q Quiz) error {
	if err := q.Validate(); err != nil {
		return err
	}
	pj, err := json.Marshal(q.SelectionPositions)
	if err != nil {
		return err
	}
	cj, err := json.Marshal(q.Choices)
	if err != nil {
		return err
	}
	created := q.CreatedAt
	if created == 0 {
		created = time.Now().Unix()
	}
	_, err = s.db.Exec(`INSERT INTO quizzes (id,title,category,passage,explanation,footnote,source,unit,paragraph,positions_json,choices_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, category=EXCLUDED.category, passage=EXCLUDED.passage,
			explanation=EXCLUDED.explanation, footnote=EXCLUDED.footnote, source=EXCLUDED.source,
			unit=EXCLUDED.unit, paragraph=EXCLUDED.paragraph,
			positions_json=EXCLUDED.positions_json, choices_json=EXCLUDED.choices_json`,
		q.ID, q.Title, q.Category, q.Passage, q.Explanation, q.Footnote, q.Source, q.Unit, q.Paragraph,
		string(pj), string(cj), created)
	return err
}

func (s *SQLStore) GetQuiz(id string) (Quiz, error) {
	row := s.db.QueryRow(`SELECT id,title,category,passage,explanation,footnote,source,unit,paragraph,positions_json,choices_json,created_at
		FROM quizzes WHERE id=$1`, id)
	return scanQuiz(row.Scan)
}

func (s *SQLStore) ListQuizzes() ([]Quiz, error) {
	rows, err := s.db.Query(`SELECT id,title,category,passage,explanation,footnote,source,unit,paragraph,positions_json,choices_json,created_at
		FROM quizzes ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Quiz
	for rows.Next() {
		q, err := scanQuiz(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteQuiz(id string) error {
	res, err := s.db.Exec(`DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanQuiz(scan func(...any) error) (Quiz, error) {
	var q Quiz
	var pjson, cjson string
	err := scan(&q.ID, &q.Title, &q.Category, &q.Passage, &q.Explanation, &q.Footnote,
		&q.Source, &q.Unit, &q.Paragraph, &pjson, &cjson, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(pjson), &q.SelectionPositions); err != nil {
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(cjson), &q.Choices); err != nil {
		return Quiz{}, err
	}
	if q.SelectionPositions == nil {
		q.SelectionPositions = []passage.SelectionPosition{}
	}
	return q, nil
}
