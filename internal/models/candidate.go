package models

// Candidate описывает кандидата и его базовые атрибуты.
type Candidate struct {
	ID           int64   `db:"id_candidato" json:"id_candidato"`
	Age          int     `db:"edad" json:"edad"`
	AverageGrade float64 `db:"nota_media" json:"nota_media"`
	EnglishLevel string  `db:"nivel_ingles" json:"nivel_ingles"`
}

// Application описывает кандидатуру (участие кандидата в процессе отбора).
type Application struct {
	ID          int64  `db:"id_candidatura" json:"id_candidatura"`
	CandidateID int64  `db:"id_candidato" json:"id_candidato"`
	Status      string `db:"status" json:"status"`
}

// CandidateProfile это кандидатура вместе с атрибутами кандидата.
type CandidateProfile struct {
	ApplicationID int64   `db:"id_candidatura" json:"id_candidatura"`
	CandidateID   int64   `db:"id_candidato" json:"id_candidato"`
	Status        string  `db:"status" json:"status"`
	Age           int     `db:"edad" json:"edad"`
	AverageGrade  float64 `db:"nota_media" json:"nota_media"`
	EnglishLevel  string  `db:"nivel_ingles" json:"nivel_ingles"`
}

// CompetencyScore хранит оценку по одной компетенции.
type CompetencyScore struct {
	ApplicationID int64   `db:"id_candidatura" json:"id_candidatura"`
	Name          string  `db:"nombre_competencia" json:"nombre_competencia"`
	Score         float64 `db:"nota" json:"nota"`
}
