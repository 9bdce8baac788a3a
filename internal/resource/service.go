package resource

import (
	"context"
	"log/slog"

	"github.com/homequest/homequest/pkg/slug"
)

type Service struct {
	repo   Repository
	kind   string
	logger *slog.Logger
}

// NewService builds a façade over one document collection. kind is the
// resource noun used in logs, e.g. "listing".
func NewService(repo Repository, kind string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		kind:   kind,
		logger: logger,
	}
}

func (service *Service) Create(context context.Context, document Document) (Document, error) {
	// Named documents get a URL-safe slug derived from their name.
	if name, ok := document[FieldName].(string); ok && name != "" {
		if _, present := document[FieldSlug]; !present {
			document[FieldSlug] = slug.From(name)
		}
	}

	created, err := service.repo.Insert(context, document)
	if err != nil {
		return nil, err
	}

	service.logger.Info("resource_created",
		slog.String("kind", service.kind),
		slog.Any("id", created[FieldID]),
	)
	return created, nil
}

func (service *Service) Get(context context.Context, id string) (Document, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) List(context context.Context) ([]Document, error) {
	return service.repo.FindAll(context)
}

func (service *Service) Update(context context.Context, id string, patch Document) error {
	if name, ok := patch[FieldName].(string); ok && name != "" {
		if _, present := patch[FieldSlug]; !present {
			patch[FieldSlug] = slug.From(name)
		}
	}

	if err := service.repo.UpdateByID(context, id, patch); err != nil {
		return err
	}

	service.logger.Info("resource_updated",
		slog.String("kind", service.kind),
		slog.String("id", id),
	)
	return nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.DeleteByID(context, id); err != nil {
		return err
	}

	service.logger.Warn("resource_deleted",
		slog.String("kind", service.kind),
		slog.String("id", id),
	)
	return nil
}
