package domain

import "context"

type ListFuelsRequest struct {
	Category string
	Region   string
}

type ListMaterialsRequest struct {
	Category string
	Search   string
}

type Service interface {
	// LookupOperational resolves the factor row for a combustion activity.
	// Returns ErrFactorNotFound when no row matches the key.
	LookupOperational(ctx context.Context, key OperationalKey) (*OperationalFactor, error)

	// LookupMaterial resolves the embodied-carbon row for a material type.
	LookupMaterial(ctx context.Context, materialType string) (*MaterialFactor, error)

	ListFuels(ctx context.Context, req ListFuelsRequest) ([]*OperationalFactor, error)
	ListMaterials(ctx context.Context, req ListMaterialsRequest) ([]*MaterialFactor, error)
	ListMaterialCategories(ctx context.Context) ([]string, error)
}
