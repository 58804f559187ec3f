package repository

import (
	"github.com/smallbiznis/hynox/internal/catalog/domain"
	"github.com/smallbiznis/hynox/pkg/repository"
)

type repo struct {
	repository.Repository[domain.ServiceItem]
}

func Provide() domain.Repository {
	return &repo{Repository: repository.ProvideStore[domain.ServiceItem]()}
}
