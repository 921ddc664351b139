package profile

import (
	"fmt"
	"sync"

	"creative-evaluator-backend/internal/models"

	"github.com/google/uuid"
)

// NewCreative returns a creative with the default platform and no
// e-commerce metadata.
func NewCreative(filename, dataURI string) models.CreativeInput {
	return models.CreativeInput{
		Filename:  filename,
		ImageData: dataURI,
		Platform:  models.DefaultPlatform,
	}
}

// CreativePatch carries optional edits to a staged creative.
type CreativePatch struct {
	Filename           *string
	Platform           *string
	IsEcommerce        *bool
	HighlightedProduct *string
}

type stagedCreative struct {
	id    uuid.UUID
	input models.CreativeInput
}

// Batch collects creatives ahead of a scoring run. Order of insertion is
// the order submitted for scoring.
type Batch struct {
	mu    sync.Mutex
	items []*stagedCreative
}

func NewBatch() *Batch {
	return &Batch{}
}

// Add stages a new creative and returns its id.
func (b *Batch) Add(filename, dataURI string) uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New()
	b.items = append(b.items, &stagedCreative{id: id, input: NewCreative(filename, dataURI)})
	return id
}

// Remove drops a creative and releases its image data.
func (b *Batch) Remove(id uuid.UUID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, item := range b.items {
		if item.id == id {
			item.input = models.CreativeInput{}
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

// Update applies a patch. Filenames are not checked against the image bytes.
func (b *Batch) Update(id uuid.UUID, patch CreativePatch) error {
	if patch.Platform != nil && !models.IsValidPlatform(*patch.Platform) {
		return fmt.Errorf("%w: unknown platform %q", models.ErrValidation, *patch.Platform)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	item := b.find(id)
	if item == nil {
		return fmt.Errorf("%w: creative %s not found", models.ErrValidation, id)
	}
	if patch.Filename != nil {
		item.input.Filename = *patch.Filename
	}
	if patch.Platform != nil {
		item.input.Platform = *patch.Platform
	}
	if patch.IsEcommerce != nil {
		item.input.IsEcommerce = *patch.IsEcommerce
	}
	if patch.HighlightedProduct != nil {
		item.input.HighlightedProduct = *patch.HighlightedProduct
	}
	return nil
}

// SetProductImage fills the highlighted product slot. The slot is optional
// even for e-commerce creatives.
func (b *Batch) SetProductImage(id uuid.UUID, dataURI string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	item := b.find(id)
	if item == nil {
		return fmt.Errorf("%w: creative %s not found", models.ErrValidation, id)
	}
	item.input.HighlightedProductImage = dataURI
	return nil
}

func (b *Batch) ClearProductImage(id uuid.UUID) error {
	return b.SetProductImage(id, "")
}

func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Inputs returns a copy of the staged creatives in submission order.
func (b *Batch) Inputs() []models.CreativeInput {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.CreativeInput, len(b.items))
	for i, item := range b.items {
		out[i] = item.input
	}
	return out
}

func (b *Batch) find(id uuid.UUID) *stagedCreative {
	for _, item := range b.items {
		if item.id == id {
			return item
		}
	}
	return nil
}
