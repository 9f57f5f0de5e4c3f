package roles

import "context"

type Repo interface {
	List(ctx context.Context) ([]*Role, error)
}
