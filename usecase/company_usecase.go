package usecase

import (
	"context"
	"database/sql"
	"errors"

	"social-dashboard/domain/model"
	"social-dashboard/domain/repository"
)

var ErrCompanyNotFound = errors.New("company not found")

type ICompanyUsecase interface {
	Create(ctx context.Context, ownerID int64, name string) (model.Company, error)
	Get(ctx context.Context, id int64) (model.Company, error)
	List(ctx context.Context, ownerID int64) ([]model.Company, error)
	Delete(ctx context.Context, id, ownerID int64) error
}

type companyUsecase struct {
	companyRepo repository.ICompany
}

func NewCompanyUsecase(companyRepo repository.ICompany) ICompanyUsecase {
	return &companyUsecase{companyRepo: companyRepo}
}

func (u *companyUsecase) Create(ctx context.Context, ownerID int64, name string) (model.Company, error) {
	return u.companyRepo.Create(ctx, model.Company{Name: name, OwnerID: ownerID})
}

func (u *companyUsecase) Get(ctx context.Context, id int64) (model.Company, error) {
	c, err := u.companyRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Company{}, ErrCompanyNotFound
	}
	return c, err
}

func (u *companyUsecase) List(ctx context.Context, ownerID int64) ([]model.Company, error) {
	return u.companyRepo.ListByOwner(ctx, ownerID)
}

func (u *companyUsecase) Delete(ctx context.Context, id, ownerID int64) error {
	err := u.companyRepo.Delete(ctx, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCompanyNotFound
	}
	return err
}
