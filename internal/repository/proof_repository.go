package repository

import (
	"context"
	"database/sql"

	"github.com/seatswap/seatswap/internal/model"
)

// ProofRepo persists seller proof entries. The ledger is append-only;
// there is no update or delete path.
type ProofRepo struct{ DB *sql.DB }

func NewProofRepo(db *sql.DB) *ProofRepo { return &ProofRepo{DB: db} }

// Create inserts a proof entry and populates its generated ID and
// timestamp.
func (r *ProofRepo) Create(ctx context.Context, p *model.SellerProof) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO seller_proof (seller_id, proof_image_url, description) VALUES (?,?,?)",
		p.SellerID, p.ProofImageURL, p.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM seller_proof WHERE id = ?", p.ID).Scan(&p.CreatedAt)
}

// ListBySeller returns a seller's proof entries, newest first. Callers
// verify the seller exists beforehand.
func (r *ProofRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]model.SellerProof, error) {
	const q = `SELECT id, seller_id, proof_image_url, description, created_at
	           FROM seller_proof WHERE seller_id = ?
	           ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, q, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.SellerProof, 0)
	for rows.Next() {
		var p model.SellerProof
		if err := rows.Scan(&p.ID, &p.SellerID, &p.ProofImageURL, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
