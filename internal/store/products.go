package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// xmax = 0 only holds for a freshly inserted row version, which makes the
// upsert report its own action without a separate existence check.
const upsertProductSQL = `
	INSERT INTO products (product_name, category, unit_price, product_description)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (product_name) DO UPDATE
	SET unit_price = EXCLUDED.unit_price,
	    category = EXCLUDED.category
	RETURNING product_id, (xmax = 0) AS inserted
`

// UpsertProduct writes one product row inside the given transaction and
// reports whether the row was inserted or updated.
func UpsertProduct(ctx context.Context, tx pgx.Tx, p ProductUpsert) (UpsertResult, error) {
	var (
		productID int64
		inserted  bool
	)
	err := tx.QueryRow(ctx, upsertProductSQL,
		p.Name, p.Category, p.UnitPrice.String(), p.Description,
	).Scan(&productID, &inserted)
	if err != nil {
		return UpsertResult{}, errors.Wrapf(err, "store: upserting product %q", p.Name)
	}

	result := UpsertResult{Action: ActionUpdated, ProductID: productID}
	if inserted {
		result.Action = ActionInserted
	}
	return result, nil
}

// UpsertProducts writes the full batch in a single transaction; if any row
// fails the whole batch rolls back. Returns inserted and updated counts.
func (s *Store) UpsertProducts(ctx context.Context, products []ProductUpsert) (inserted, updated int, err error) {
	err = s.WithTx(ctx, func(tx pgx.Tx) error {
		for _, p := range products {
			result, err := UpsertProduct(ctx, tx, p)
			if err != nil {
				return err
			}
			switch result.Action {
			case ActionInserted:
				inserted++
			case ActionUpdated:
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return inserted, updated, nil
}
