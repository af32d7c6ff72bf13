package models

// Статусы кандидатур.
const (
	StatusEntrevista1      = "Entrevista1"
	StatusEntrevista2      = "Entrevista2"
	StatusCentroEvaluacion = "CentroEvaluación"
	StatusOfertado         = "Ofertado"
	StatusDescartado       = "Descartado"
)

// Компетенции в каноническом порядке.
const (
	CompetencyProfesionalidad     = "Profesionalidad"
	CompetencyDominio             = "Dominio"
	CompetencyResiliencia         = "Resiliencia"
	CompetencyHabilidadesSociales = "HabilidadesSociales"
	CompetencyLiderazgo           = "Liderazgo"
	CompetencyColaboracion        = "Colaboracion"
	CompetencyCompromiso          = "Compromiso"
	CompetencyIniciativa          = "Iniciativa"
)

// Вердикты модели.
const (
	VerdictAdmitted = "Admitido"
	VerdictRejected = "Rechazado"
)

// Competencies список обязательных компетенций. Порядок значим.
var Competencies = []string{
	CompetencyProfesionalidad,
	CompetencyDominio,
	CompetencyResiliencia,
	CompetencyHabilidadesSociales,
	CompetencyLiderazgo,
	CompetencyColaboracion,
	CompetencyCompromiso,
	CompetencyIniciativa,
}

// PositiveStatuses статусы, которые считаются положительным исходом.
var PositiveStatuses = map[string]struct{}{
	StatusEntrevista1:      {},
	StatusEntrevista2:      {},
	StatusCentroEvaluacion: {},
	StatusOfertado:         {},
}

// TrainingStatuses статусы, попадающие в обучающую выборку.
// Descartado включён намеренно: это отрицательные примеры.
var TrainingStatuses = []string{
	StatusEntrevista2,
	StatusOfertado,
	StatusEntrevista1,
	StatusCentroEvaluacion,
	StatusDescartado,
}
