package repositories

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type ListOptions struct {
	Skip  int
	Limit int
}

// Normalized fills in the default page size.
func (o ListOptions) Normalized() ListOptions {
	if o.Skip < 0 {
		o.Skip = 0
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	return o
}

type UnitFilter struct {
	BuildingID *uuid.UUID
	ListOptions
}

type TenantFilter struct {
	UnitID *uuid.UUID
	ListOptions
}

type StaffFilter struct {
	Active *bool
	ListOptions
}

type RequestFilter struct {
	Status     *models.RequestStatus
	TenantID   *uuid.UUID
	BuildingID *uuid.UUID
	IssueType  *models.IssueType
	Priority   *models.Priority
	ListOptions
}

// queryBuilder appends positional predicates to a base SELECT.
type queryBuilder struct {
	qb    strings.Builder
	args  []any
	where bool
}

func newQueryBuilder(base string) *queryBuilder {
	b := &queryBuilder{}
	b.qb.WriteString(base)
	return b
}

// and adds "column op $n".
func (b *queryBuilder) and(column, op string, v any) {
	if b.where {
		b.qb.WriteString(" AND ")
	} else {
		b.qb.WriteString(" WHERE ")
		b.where = true
	}
	b.args = append(b.args, v)
	b.qb.WriteString(column)
	b.qb.WriteString(" " + op + " $")
	b.qb.WriteString(strconv.Itoa(len(b.args)))
}

func (b *queryBuilder) page(orderBy string, opts ListOptions) {
	opts = opts.Normalized()
	b.qb.WriteString(" ORDER BY " + orderBy)
	b.args = append(b.args, opts.Limit)
	b.qb.WriteString(" LIMIT $" + strconv.Itoa(len(b.args)))
	b.args = append(b.args, opts.Skip)
	b.qb.WriteString(" OFFSET $" + strconv.Itoa(len(b.args)))
}

func (b *queryBuilder) build() (string, []any) {
	return b.qb.String(), b.args
}
