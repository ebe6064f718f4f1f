package services

import (
	"context"
	"path"

	"elec-mate/coshh"
	"elec-mate/models"
)

// Uploader stores a blob and returns where it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// Archiver uploads the rendered document of each assessment.
type Archiver struct {
	Uploader Uploader
	Prefix   string
}

func NewArchiver(u Uploader, prefix string) *Archiver {
	return &Archiver{Uploader: u, Prefix: prefix}
}

// Key is the object key for an assessment document.
func (a *Archiver) Key(id string) string {
	return path.Join(a.Prefix, id+".md")
}

// Archive renders asm, uploads it and records the link on asm.
func (a *Archiver) Archive(ctx context.Context, asm *models.Assessment) error {
	doc := coshh.RenderDocument(*asm)
	url, err := a.Uploader.Upload(ctx, a.Key(asm.ID), "text/markdown; charset=utf-8", []byte(doc))
	if err != nil {
		return err
	}
	asm.ArchiveURL = url
	return nil
}

// Withdraw removes the uploaded document of asm and clears its link.
func (a *Archiver) Withdraw(ctx context.Context, asm *models.Assessment) error {
	if asm.ArchiveURL == "" {
		return nil
	}
	if err := a.Uploader.Delete(ctx, a.Key(asm.ID)); err != nil {
		return err
	}
	asm.ArchiveURL = ""
	return nil
}
