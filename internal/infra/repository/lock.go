package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate aplica SELECT ... FOR UPDATE no Postgres. O SQLite já
// serializa escritas no nível do banco e não aceita a cláusula.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// notFound troca gorm.ErrRecordNotFound pelo erro de negócio.
func notFound(err, businessErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return businessErr
	}
	return err
}
