package pgrepo

import (
	"context"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/pkg/uow"
	"github.com/jackc/pgx/v5"
)

type StaffBadgeRepository struct {
	conn uow.DBTX
}

func NewStaffBadgeRepository(conn uow.DBTX) *StaffBadgeRepository {
	return &StaffBadgeRepository{conn: conn}
}

func (r *StaffBadgeRepository) Create(ctx context.Context, badge domain.StaffBadge) (*domain.StaffBadge, error) {
	row := r.conn.QueryRow(ctx, `
		INSERT INTO staff_badges (machine_id, local_id, identity)
		VALUES ($1, $2, $3)
		RETURNING machine_id, local_id, identity, created_at`,
		badge.MachineID, int64(badge.LocalID), badge.Identity, //nolint:gosec
	)
	created, err := scanStaffBadge(row)
	if err != nil {
		return nil, convertErr(err, "creating staff badge #%d of machine %s", badge.LocalID, badge.MachineID)
	}
	return created, nil
}

func scanStaffBadge(row pgx.Row) (*domain.StaffBadge, error) {
	var (
		b       domain.StaffBadge
		localID int64
	)
	if err := row.Scan(&b.MachineID, &localID, &b.Identity, &b.CreatedAt); err != nil {
		return nil, err //nolint:wrapcheck
	}
	b.LocalID = uint64(localID) //nolint:gosec
	return &b, nil
}
