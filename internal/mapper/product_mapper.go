package mapper

import (
	"encoding/json"
	"time"

	"product-guide-be/internal/entity"
	"product-guide-be/internal/model"

	"gorm.io/datatypes"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func toJSON(values []string) datatypes.JSON {
	if len(values) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	b, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}

func fromJSON(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Product{
		Id:          p.Id,
		SourceId:    p.SourceId,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		URL:         p.URL,
		Image:       p.Image,
		Bullets:     fromJSON(p.Bullets),
		HowToUse:    p.HowToUse,
		Ingredients: p.Ingredients,
		Tags:        fromJSON(p.Tags),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ProductMapper) ToModel(e *entity.Product) *model.Product {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Product{
		Id:          e.Id,
		SourceId:    e.SourceId,
		Title:       e.Title,
		Description: e.Description,
		Price:       e.Price,
		URL:         e.URL,
		Image:       e.Image,
		Bullets:     toJSON(e.Bullets),
		HowToUse:    e.HowToUse,
		Ingredients: e.Ingredients,
		Tags:        toJSON(e.Tags),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ProductMapper) ToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(products))
	for i, p := range products {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
