package domain

import "github.com/smallbiznis/hynox/pkg/repository"

type Repository interface {
	repository.Repository[Client]
}
