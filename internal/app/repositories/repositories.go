package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles every repository built on the shared pool.
type Repositories struct {
	DonorRepository    *DonorRepository
	CategoryRepository *CategoryRepository
	ProductRepository  *ProductRepository
	FridgeRepository   *FridgeRepository
	CheckoutRepository *CheckoutRepository
}

// NewRepositories creates all repositories against one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		DonorRepository:    NewDonorRepository(db),
		CategoryRepository: NewCategoryRepository(db),
		ProductRepository:  NewProductRepository(db),
		FridgeRepository:   NewFridgeRepository(db),
		CheckoutRepository: NewCheckoutRepository(db),
	}
}
