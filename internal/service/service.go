// Package service содержит бизнес-логику магазина: каталог, корзину, оформление заказа и конфигуратор.
package service

import (
	"github.com/pkg/errors"

	"pcbuilder/internal/domain"
	"pcbuilder/internal/repository"
)

// translate переводит ошибки хранилища в доменные; notFound - ошибка для отсутствующей сущности
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrVersionConflict):
		return domain.ErrVersionConflict
	}
	return err
}

func requireShopper(shopperID int64) error {
	if shopperID <= 0 {
		return domain.ErrUnauthorized
	}
	return nil
}
