package model

import "time"

// SellerProof is an evidentiary record (a screenshot of a past sale or
// similar) a seller attaches to their own account to build credibility.
// Proof entries are append-only and created only by the seller they
// document.
//
// Fields:
//  ID            – primary key identifier.
//  SellerID      – user the proof belongs to.
//  ProofImageURL – where the screenshot is hosted.
//  Description   – optional caption.
//  CreatedAt     – creation timestamp.
type SellerProof struct {
	ID            uint64    // seller_proof.id
	SellerID      uint64    // seller_proof.seller_id
	ProofImageURL string    // seller_proof.proof_image_url
	Description   *string   // seller_proof.description (nullable)
	CreatedAt     time.Time // seller_proof.created_at
}
