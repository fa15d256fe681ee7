package queries

import (
	"context"

	"github.com/DedS3t/monopoly-engine/app/models"
)

func (r *Repo) CreateUser(ctx context.Context, user *models.User) error {
	_, err := r.db.ModelContext(ctx, user).Insert()
	return err
}

func (r *Repo) GetUser(ctx context.Context, id string) (models.User, error) {
	user := models.User{Id: id}
	err := r.db.ModelContext(ctx, &user).WherePK().Select()
	return user, notFound(err, "user "+id)
}

func (r *Repo) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.ModelContext(ctx, &user).Where("email = ?", email).Limit(1).Select()
	return user, notFound(err, "user "+email)
}
