package history

import "github.com/mmrzaf/datemath/internal/domain"

// Repository stores the evaluation history for the datemath control DB.
type Repository interface {
	Init() error
	Record(ev *domain.Evaluation) error
	Get(id string) (*domain.Evaluation, error)
	List(limit int, status string) ([]*domain.Evaluation, error)
	Close() error
}
