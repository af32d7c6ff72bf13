package ml

import "errors"

var (
	ErrShape           = errors.New("ml: размер входа не совпадает с моделью")
	ErrEmptyDataset    = errors.New("ml: пустая обучающая выборка")
	ErrInvalidLabel    = errors.New("ml: метка должна быть 0 или 1")
	ErrInvalidParams   = errors.New("ml: некорректные параметры обучения")
	ErrNotFitted       = errors.New("ml: модель не обучена")
	ErrInvalidArtifact = errors.New("ml: некорректный артефакт модели")
)
