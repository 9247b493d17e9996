/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package storage

import (
	"fmt"

	"github.com/ortuman/rabber/storage/breaker"
	memorystorage "github.com/ortuman/rabber/storage/memory"
	"github.com/ortuman/rabber/storage/mysql"
	"github.com/ortuman/rabber/storage/pgsql"
	"github.com/ortuman/rabber/storage/repository"
)

// New initializes configured storage type and returns associated container.
// SQL backed containers are guarded by a circuit breaker.
func New(config *Config) (repository.Container, error) {
	switch config.Type {
	case MySQL:
		c, err := mysql.New(config.MySQL)
		if err != nil {
			return nil, err
		}
		return breaker.New(c, config.CircuitBreaker), nil

	case PostgreSQL:
		c, err := pgsql.New(config.PostgreSQL)
		if err != nil {
			return nil, err
		}
		return breaker.New(c, config.CircuitBreaker), nil

	case Memory:
		return memorystorage.New()

	default:
		return nil, fmt.Errorf("storage: unrecognized storage type: %d", config.Type)
	}
}
