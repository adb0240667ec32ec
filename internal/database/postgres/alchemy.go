package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/repository"
)

// AlchemyRepository implements repository.Alchemy for PostgreSQL
type AlchemyRepository struct {
	pool *pgxpool.Pool
}

// NewAlchemyRepository creates a new AlchemyRepository
func NewAlchemyRepository(pool *pgxpool.Pool) repository.Alchemy {
	return &AlchemyRepository{pool: pool}
}

// GetElements retrieves all elements ordered by name
func (r *AlchemyRepository) GetElements(ctx context.Context) ([]domain.Element, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id_elemento, nombre, cantidad, color
		   FROM "Elementos"
		  ORDER BY nombre ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get elements: %w", err)
	}
	defer rows.Close()

	elements := []domain.Element{}
	for rows.Next() {
		var e domain.Element
		var color pgtype.Text
		if err := rows.Scan(&e.ID, &e.Name, &e.Quantity, &color); err != nil {
			return nil, fmt.Errorf("failed to scan element: %w", err)
		}
		e.Color = textToStr(color)
		elements = append(elements, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read elements: %w", err)
	}

	return elements, nil
}

// SetElementQuantity writes an absolute quantity (direct-set mode)
func (r *AlchemyRepository) SetElementQuantity(ctx context.Context, elementID, quantity int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE "Elementos"
		    SET cantidad = $1
		  WHERE id_elemento = $2`,
		quantity, elementID)
	if err != nil {
		return fmt.Errorf("failed to set element quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrElementNotFound
	}
	return nil
}

// GetElementByName retrieves an element by name, (nil, nil) when absent
func (r *AlchemyRepository) GetElementByName(ctx context.Context, name string) (*domain.Element, error) {
	return scanElementByName(ctx, r.pool, name, false)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanElementByName(ctx context.Context, q rowQuerier, name string, forUpdate bool) (*domain.Element, error) {
	sql := `SELECT id_elemento, nombre, cantidad, color
	          FROM "Elementos"
	         WHERE nombre = $1
	         LIMIT 1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}

	var e domain.Element
	var color pgtype.Text
	err := q.QueryRow(ctx, sql, name).Scan(&e.ID, &e.Name, &e.Quantity, &color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get element by name: %w", err)
	}
	e.Color = textToStr(color)
	return &e, nil
}

// GetMaterialMap retrieves the full extraction mapping grouped by material,
// ordered by material name then mapping insertion order
func (r *AlchemyRepository) GetMaterialMap(ctx context.Context) ([]domain.MaterialYields, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id_material,
		        m.nombre,
		        m.cantidad,
		        e.id_elemento,
		        e.nombre,
		        me.cant_extraible
		   FROM "Mats_extraidos" me
		   JOIN "Materiales" m ON me.id_material = m.id_material
		   JOIN "Elementos"  e ON me.id_elemento = e.id_elemento
		  ORDER BY m.nombre, me.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get material map: %w", err)
	}
	defer rows.Close()

	grouped := []domain.MaterialYields{}
	index := map[int]int{}
	for rows.Next() {
		var materialID, stock, elementID, yield int
		var materialName, elementName string
		if err := rows.Scan(&materialID, &materialName, &stock, &elementID, &elementName, &yield); err != nil {
			return nil, fmt.Errorf("failed to scan material map row: %w", err)
		}

		i, ok := index[materialID]
		if !ok {
			i = len(grouped)
			index[materialID] = i
			grouped = append(grouped, domain.MaterialYields{
				MaterialID:   materialID,
				MaterialName: materialName,
				Stock:        stock,
				Elements:     []domain.ExtractionYield{},
			})
		}
		grouped[i].Elements = append(grouped[i].Elements, domain.ExtractionYield{
			ElementID:    elementID,
			ElementName:  elementName,
			YieldPerUnit: yield,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read material map: %w", err)
	}

	return grouped, nil
}

// GetMaterialYields retrieves the grouped mapping for one material
func (r *AlchemyRepository) GetMaterialYields(ctx context.Context, materialID int) (*domain.MaterialYields, error) {
	var m domain.MaterialYields
	err := r.pool.QueryRow(ctx,
		`SELECT id_material, nombre, cantidad
		   FROM "Materiales"
		  WHERE id_material = $1
		  LIMIT 1`,
		materialID).Scan(&m.MaterialID, &m.MaterialName, &m.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT e.id_elemento, e.nombre, me.cant_extraible
		   FROM "Mats_extraidos" me
		   JOIN "Elementos" e ON me.id_elemento = e.id_elemento
		  WHERE me.id_material = $1
		  ORDER BY me.id`,
		materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to get material yields: %w", err)
	}
	defer rows.Close()

	m.Elements = []domain.ExtractionYield{}
	for rows.Next() {
		var y domain.ExtractionYield
		if err := rows.Scan(&y.ElementID, &y.ElementName, &y.YieldPerUnit); err != nil {
			return nil, fmt.Errorf("failed to scan material yield: %w", err)
		}
		m.Elements = append(m.Elements, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read material yields: %w", err)
	}

	return &m, nil
}

// GetMaterialByName retrieves a material by name, (nil, nil) when absent
func (r *AlchemyRepository) GetMaterialByName(ctx context.Context, name string) (*domain.Material, error) {
	var m domain.Material
	err := r.pool.QueryRow(ctx,
		`SELECT id_material, nombre, cantidad
		   FROM "Materiales"
		  WHERE nombre = $1
		  LIMIT 1`,
		name).Scan(&m.ID, &m.Name, &m.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get material by name: %w", err)
	}
	return &m, nil
}

// CreateMaterial inserts a material with zero stock
func (r *AlchemyRepository) CreateMaterial(ctx context.Context, name string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO "Materiales" (nombre, cantidad)
		 VALUES ($1, 0)
		 RETURNING id_material`,
		name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create material: %w", err)
	}
	return id, nil
}

// UpsertExtractionYield replaces any prior yield for the (material, element) pair
func (r *AlchemyRepository) UpsertExtractionYield(ctx context.Context, materialID, elementID, yieldPerUnit int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO "Mats_extraidos" (id_material, id_elemento, cant_extraible)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id_material, id_elemento)
		 DO UPDATE SET cant_extraible = EXCLUDED.cant_extraible`,
		materialID, elementID, yieldPerUnit)
	if err != nil {
		return fmt.Errorf("failed to upsert extraction yield: %w", err)
	}
	return nil
}

// GetRecipeRows retrieves the flat recipe listing, one row per requirement,
// products without requirements included
func (r *AlchemyRepository) GetRecipeRows(ctx context.Context) ([]domain.RecipeRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id_producto,
		        p.nombre,
		        p.descripcion,
		        p.toxicidad,
		        e.nombre,
		        re.proporcion
		   FROM "Productos" p
		   LEFT JOIN "Recetas_producto_elemento" re ON re.id_producto = p.id_producto
		   LEFT JOIN "Elementos" e ON e.id_elemento = re.id_elemento
		  ORDER BY p.nombre ASC, p.id_producto, re.proporcion DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe rows: %w", err)
	}
	defer rows.Close()

	recipeRows := []domain.RecipeRow{}
	for rows.Next() {
		var row domain.RecipeRow
		var description, elementName pgtype.Text
		var proportion pgtype.Int4
		if err := rows.Scan(&row.ProductID, &row.ProductName, &description, &row.Toxicity, &elementName, &proportion); err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}
		row.Description = textToStr(description)
		row.ElementName = textToStr(elementName)
		if proportion.Valid {
			row.Proportion = int(proportion.Int32)
		}
		recipeRows = append(recipeRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipe rows: %w", err)
	}

	return recipeRows, nil
}

// InsertProduct creates a product row. Duplicate names are allowed; every save
// produces a distinct product.
func (r *AlchemyRepository) InsertProduct(ctx context.Context, name, description string, toxicity int) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO "Productos" (nombre, descripcion, toxicidad)
		 VALUES ($1, $2, $3)
		 RETURNING id_producto`,
		name, strToText(description), toxicity).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}
	return id, nil
}

// InsertRecipeRequirement adds one requirement row to a product
func (r *AlchemyRepository) InsertRecipeRequirement(ctx context.Context, productID, elementID, proportion int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO "Recetas_producto_elemento" (id_producto, id_elemento, proporcion)
		 VALUES ($1, $2, $3)`,
		productID, elementID, proportion)
	if err != nil {
		return fmt.Errorf("failed to insert recipe requirement: %w", err)
	}
	return nil
}

// GetProductIDByName resolves a product name to its id
func (r *AlchemyRepository) GetProductIDByName(ctx context.Context, name string) (int, error) {
	return getProductIDByName(ctx, r.pool, name)
}

func getProductIDByName(ctx context.Context, q rowQuerier, name string) (int, error) {
	var id int
	err := q.QueryRow(ctx,
		`SELECT id_producto
		   FROM "Productos"
		  WHERE nombre = $1
		  LIMIT 1`,
		name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrProductNotFound
		}
		return 0, fmt.Errorf("failed to get product by name: %w", err)
	}
	return id, nil
}

// DeleteRecipe removes a product's requirement rows, then the product itself
func (r *AlchemyRepository) DeleteRecipe(ctx context.Context, productID int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM "Recetas_producto_elemento"
		  WHERE id_producto = $1`,
		productID); err != nil {
		return fmt.Errorf("failed to delete recipe requirements: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM "Productos"
		  WHERE id_producto = $1`,
		productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recipe deletion: %w", err)
	}
	return nil
}

// BeginTx starts a row-locked transaction for the crafting and extraction engines
func (r *AlchemyRepository) BeginTx(ctx context.Context) (repository.AlchemyTx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &alchemyTx{tx: tx}, nil
}

// alchemyTx implements repository.AlchemyTx over a pgx transaction
type alchemyTx struct {
	tx pgx.Tx
}

func (t *alchemyTx) GetProductIDByName(ctx context.Context, name string) (int, error) {
	return getProductIDByName(ctx, t.tx, name)
}

func (t *alchemyTx) GetElementByNameForUpdate(ctx context.Context, name string) (*domain.Element, error) {
	return scanElementByName(ctx, t.tx, name, true)
}

func (t *alchemyTx) GetMaterialForUpdate(ctx context.Context, materialID int) (*domain.Material, error) {
	var m domain.Material
	err := t.tx.QueryRow(ctx,
		`SELECT id_material, nombre, cantidad
		   FROM "Materiales"
		  WHERE id_material = $1
		  LIMIT 1
		    FOR UPDATE`,
		materialID).Scan(&m.ID, &m.Name, &m.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get material for update: %w", err)
	}
	return &m, nil
}

func (t *alchemyTx) GetExtractionYields(ctx context.Context, materialID int) ([]domain.ExtractionYield, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT e.id_elemento, e.nombre, me.cant_extraible
		   FROM "Mats_extraidos" me
		   JOIN "Elementos" e ON me.id_elemento = e.id_elemento
		  WHERE me.id_material = $1
		  ORDER BY me.id`,
		materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to get extraction yields: %w", err)
	}
	defer rows.Close()

	yields := []domain.ExtractionYield{}
	for rows.Next() {
		var y domain.ExtractionYield
		if err := rows.Scan(&y.ElementID, &y.ElementName, &y.YieldPerUnit); err != nil {
			return nil, fmt.Errorf("failed to scan extraction yield: %w", err)
		}
		yields = append(yields, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read extraction yields: %w", err)
	}

	return yields, nil
}

func (t *alchemyTx) AdjustElementQuantity(ctx context.Context, elementID, delta int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE "Elementos"
		    SET cantidad = cantidad + $1
		  WHERE id_elemento = $2`,
		delta, elementID)
	if err != nil {
		return fmt.Errorf("failed to adjust element quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrElementNotFound
	}
	return nil
}

func (t *alchemyTx) AdjustMaterialQuantity(ctx context.Context, materialID, delta int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE "Materiales"
		    SET cantidad = cantidad + $1
		  WHERE id_material = $2`,
		delta, materialID)
	if err != nil {
		return fmt.Errorf("failed to adjust material quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

func (t *alchemyTx) AddPotionToCharacter(ctx context.Context, characterID, productID int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE "Pocion_Y_Portador"
		    SET cantidad = cantidad + 1
		  WHERE id_personaje = $1
		    AND id_item = $2`,
		characterID, productID)
	if err != nil {
		return fmt.Errorf("failed to increment potion: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	if _, err := t.tx.Exec(ctx,
		`INSERT INTO "Pocion_Y_Portador" (id_personaje, id_item, cantidad)
		 VALUES ($1, $2, 1)`,
		characterID, productID); err != nil {
		return fmt.Errorf("failed to insert potion: %w", err)
	}
	return nil
}

func (t *alchemyTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *alchemyTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
