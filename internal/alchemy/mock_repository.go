package alchemy

import (
	"context"
	"sort"
	"strings"

	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/repository"
)

// MockRepository implements repository.Alchemy for testing
type MockRepository struct {
	elements     map[int]*domain.Element
	materials    map[int]*domain.Material
	yields       map[int][]domain.ExtractionYield // keyed by material ID
	products     map[int]*mockProduct
	requirements []mockRequirement
	potions      map[int]map[int]int // characterID -> productID -> count

	nextElementID  int
	nextMaterialID int
	nextProductID  int

	beginTxErr error
	commitErr  error
}

type mockProduct struct {
	name        string
	description string
	toxicity    int
}

type mockRequirement struct {
	productID  int
	elementID  int
	proportion int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		elements:  make(map[int]*domain.Element),
		materials: make(map[int]*domain.Material),
		yields:    make(map[int][]domain.ExtractionYield),
		products:  make(map[int]*mockProduct),
		potions:   make(map[int]map[int]int),
	}
}

func (m *MockRepository) AddElement(name string, quantity int) int {
	m.nextElementID++
	m.elements[m.nextElementID] = &domain.Element{ID: m.nextElementID, Name: name, Quantity: quantity}
	return m.nextElementID
}

func (m *MockRepository) AddMaterial(name string, quantity int) int {
	m.nextMaterialID++
	m.materials[m.nextMaterialID] = &domain.Material{ID: m.nextMaterialID, Name: name, Quantity: quantity}
	return m.nextMaterialID
}

func (m *MockRepository) ElementQuantity(id int) int {
	if e, ok := m.elements[id]; ok {
		return e.Quantity
	}
	return 0
}

func (m *MockRepository) PotionCount(characterID, productID int) int {
	return m.potions[characterID][productID]
}

func (m *MockRepository) GetElements(ctx context.Context) ([]domain.Element, error) {
	out := make([]domain.Element, 0, len(m.elements))
	for _, e := range m.elements {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockRepository) SetElementQuantity(ctx context.Context, elementID, quantity int) error {
	e, ok := m.elements[elementID]
	if !ok {
		return domain.ErrElementNotFound
	}
	e.Quantity = quantity
	return nil
}

func (m *MockRepository) GetElementByName(ctx context.Context, name string) (*domain.Element, error) {
	for _, e := range m.elements {
		if strings.EqualFold(e.Name, name) {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetMaterialMap(ctx context.Context) ([]domain.MaterialYields, error) {
	out := make([]domain.MaterialYields, 0, len(m.materials))
	for id := range m.materials {
		my, _ := m.GetMaterialYields(ctx, id)
		out = append(out, *my)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialName < out[j].MaterialName })
	return out, nil
}

func (m *MockRepository) GetMaterialYields(ctx context.Context, materialID int) (*domain.MaterialYields, error) {
	mat, ok := m.materials[materialID]
	if !ok {
		return nil, domain.ErrMaterialNotFound
	}
	elements := make([]domain.ExtractionYield, 0, len(m.yields[materialID]))
	elements = append(elements, m.yields[materialID]...)
	return &domain.MaterialYields{
		MaterialID:   mat.ID,
		MaterialName: mat.Name,
		Stock:        mat.Quantity,
		Elements:     elements,
	}, nil
}

func (m *MockRepository) GetMaterialByName(ctx context.Context, name string) (*domain.Material, error) {
	for _, mat := range m.materials {
		if strings.EqualFold(mat.Name, name) {
			copied := *mat
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) CreateMaterial(ctx context.Context, name string) (int, error) {
	return m.AddMaterial(name, 0), nil
}

func (m *MockRepository) UpsertExtractionYield(ctx context.Context, materialID, elementID, yieldPerUnit int) error {
	name := ""
	if e, ok := m.elements[elementID]; ok {
		name = e.Name
	}
	for i, y := range m.yields[materialID] {
		if y.ElementID == elementID {
			m.yields[materialID][i].YieldPerUnit = yieldPerUnit
			return nil
		}
	}
	m.yields[materialID] = append(m.yields[materialID], domain.ExtractionYield{
		ElementID:    elementID,
		ElementName:  name,
		YieldPerUnit: yieldPerUnit,
	})
	return nil
}

func (m *MockRepository) GetRecipeRows(ctx context.Context) ([]domain.RecipeRow, error) {
	rows := []domain.RecipeRow{}
	ids := make([]int, 0, len(m.products))
	for id := range m.products {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		p := m.products[id]
		found := false
		for _, req := range m.requirements {
			if req.productID != id {
				continue
			}
			found = true
			rows = append(rows, domain.RecipeRow{
				ProductID:   id,
				ProductName: p.name,
				Description: p.description,
				Toxicity:    p.toxicity,
				ElementName: m.elements[req.elementID].Name,
				Proportion:  req.proportion,
			})
		}
		if !found {
			rows = append(rows, domain.RecipeRow{
				ProductID:   id,
				ProductName: p.name,
				Description: p.description,
				Toxicity:    p.toxicity,
			})
		}
	}
	return rows, nil
}

func (m *MockRepository) InsertProduct(ctx context.Context, name, description string, toxicity int) (int, error) {
	m.nextProductID++
	m.products[m.nextProductID] = &mockProduct{name: name, description: description, toxicity: toxicity}
	return m.nextProductID, nil
}

func (m *MockRepository) InsertRecipeRequirement(ctx context.Context, productID, elementID, proportion int) error {
	m.requirements = append(m.requirements, mockRequirement{productID: productID, elementID: elementID, proportion: proportion})
	return nil
}

func (m *MockRepository) GetProductIDByName(ctx context.Context, name string) (int, error) {
	for id, p := range m.products {
		if strings.EqualFold(p.name, name) {
			return id, nil
		}
	}
	return 0, domain.ErrProductNotFound
}

func (m *MockRepository) DeleteRecipe(ctx context.Context, productID int) error {
	if _, ok := m.products[productID]; !ok {
		return domain.ErrProductNotFound
	}
	kept := m.requirements[:0]
	for _, req := range m.requirements {
		if req.productID != productID {
			kept = append(kept, req)
		}
	}
	m.requirements = kept
	delete(m.products, productID)
	return nil
}

// BeginTx snapshots the ledger so that Rollback restores it, mirroring the
// all-or-nothing behavior of the real transaction.
func (m *MockRepository) BeginTx(ctx context.Context) (repository.AlchemyTx, error) {
	if m.beginTxErr != nil {
		return nil, m.beginTxErr
	}
	tx := &mockTx{
		repo:             m,
		elementSnapshot:  make(map[int]int, len(m.elements)),
		materialSnapshot: make(map[int]int, len(m.materials)),
		potionSnapshot:   make(map[int]map[int]int, len(m.potions)),
	}
	for id, e := range m.elements {
		tx.elementSnapshot[id] = e.Quantity
	}
	for id, mat := range m.materials {
		tx.materialSnapshot[id] = mat.Quantity
	}
	for charID, counts := range m.potions {
		copied := make(map[int]int, len(counts))
		for pid, n := range counts {
			copied[pid] = n
		}
		tx.potionSnapshot[charID] = copied
	}
	return tx, nil
}

type mockTx struct {
	repo             *MockRepository
	elementSnapshot  map[int]int
	materialSnapshot map[int]int
	potionSnapshot   map[int]map[int]int
	done             bool
}

func (t *mockTx) GetProductIDByName(ctx context.Context, name string) (int, error) {
	return t.repo.GetProductIDByName(ctx, name)
}

func (t *mockTx) GetElementByNameForUpdate(ctx context.Context, name string) (*domain.Element, error) {
	return t.repo.GetElementByName(ctx, name)
}

func (t *mockTx) GetMaterialForUpdate(ctx context.Context, materialID int) (*domain.Material, error) {
	mat, ok := t.repo.materials[materialID]
	if !ok {
		return nil, nil
	}
	copied := *mat
	return &copied, nil
}

func (t *mockTx) GetExtractionYields(ctx context.Context, materialID int) ([]domain.ExtractionYield, error) {
	return append([]domain.ExtractionYield{}, t.repo.yields[materialID]...), nil
}

func (t *mockTx) AdjustElementQuantity(ctx context.Context, elementID, delta int) error {
	e, ok := t.repo.elements[elementID]
	if !ok {
		return domain.ErrElementNotFound
	}
	e.Quantity += delta
	return nil
}

func (t *mockTx) AdjustMaterialQuantity(ctx context.Context, materialID, delta int) error {
	mat, ok := t.repo.materials[materialID]
	if !ok {
		return domain.ErrMaterialNotFound
	}
	mat.Quantity += delta
	return nil
}

func (t *mockTx) AddPotionToCharacter(ctx context.Context, characterID, productID int) error {
	if t.repo.potions[characterID] == nil {
		t.repo.potions[characterID] = make(map[int]int)
	}
	t.repo.potions[characterID][productID]++
	return nil
}

func (t *mockTx) Commit(ctx context.Context) error {
	if t.repo.commitErr != nil {
		return t.repo.commitErr
	}
	t.done = true
	return nil
}

func (t *mockTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	for id, q := range t.elementSnapshot {
		t.repo.elements[id].Quantity = q
	}
	for id, q := range t.materialSnapshot {
		t.repo.materials[id].Quantity = q
	}
	t.repo.potions = t.potionSnapshot
	return nil
}
