package repository

import (
	"github.com/smallbiznis/hynox/internal/client/domain"
	"github.com/smallbiznis/hynox/pkg/repository"
)

type repo struct {
	repository.Repository[domain.Client]
}

func Provide() domain.Repository {
	return &repo{Repository: repository.ProvideStore[domain.Client]()}
}
