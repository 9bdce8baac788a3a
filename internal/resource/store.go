package resource

import "context"

type Repository interface {
	Insert(context context.Context, document Document) (Document, error)
	FindByID(context context.Context, id string) (Document, error)
	FindAll(context context.Context) ([]Document, error)
	UpdateByID(context context.Context, id string, patch Document) error
	DeleteByID(context context.Context, id string) error
}
