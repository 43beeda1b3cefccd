package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// UniqueViolation signals a duplicate value for a unique constraint.
type UniqueViolation struct {
	Constraint string
}

func (e *UniqueViolation) Error() string {
	return fmt.Sprintf("unique constraint %q violated", e.Constraint)
}

// ForeignKeyViolation signals a reference to a missing parent row.
type ForeignKeyViolation struct {
	Constraint string
}

func (e *ForeignKeyViolation) Error() string {
	return fmt.Sprintf("foreign key %q violated", e.Constraint)
}

// Constraint names declared in the migrations.
const (
	ConstraintUsersUsername   = "users_username_key"
	ConstraintUsersEmail      = "users_email_key"
	ConstraintUsersPhone      = "users_phone_key"
	ConstraintCommunitiesName = "communities_name_key"
	ConstraintPostLikesPair   = "post_likes_post_id_user_id_key"
	ConstraintPostsCommunity  = "community_posts_community_id_fkey"
	ConstraintStoresOwner     = "stores_owner_user_id_key"
	ConstraintStoresName      = "stores_name_key"
	ConstraintThemesStore     = "theme_customizations_store_id_key"
)

// IsUniqueViolation reports whether err is a unique violation on the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var uv *UniqueViolation
	return errors.As(err, &uv) && uv.Constraint == constraint
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidText         = "22P02"
)

// translate converts driver errors to repository errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &UniqueViolation{Constraint: pgErr.ConstraintName}
		case pgForeignKeyViolation:
			return &ForeignKeyViolation{Constraint: pgErr.ConstraintName}
		case pgInvalidText:
			return ErrNotFound
		}
	}
	return err
}

// validID rejects ids that can never match a uuid primary key.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
