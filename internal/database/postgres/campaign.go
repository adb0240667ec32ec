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

// CampaignRepository implements repository.Campaign for PostgreSQL
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(pool *pgxpool.Pool) repository.Campaign {
	return &CampaignRepository{pool: pool}
}

// ---- Characters ----

// GetCharacters retrieves all characters ordered by id
func (r *CampaignRepository) GetCharacters(ctx context.Context) ([]domain.Character, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id_pj, nombre, informacion, imagen, imagen_fondo
		   FROM "Personajes"
		  ORDER BY id_pj ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get characters: %w", err)
	}
	defer rows.Close()

	characters := []domain.Character{}
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		characters = append(characters, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read characters: %w", err)
	}

	return characters, nil
}

// GetCharacterByID retrieves a character by id
func (r *CampaignRepository) GetCharacterByID(ctx context.Context, id int) (*domain.Character, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id_pj, nombre, informacion, imagen, imagen_fondo
		   FROM "Personajes"
		  WHERE id_pj = $1
		  LIMIT 1`,
		id)

	c, err := scanCharacter(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, err
	}
	return c, nil
}

func scanCharacter(row pgx.Row) (*domain.Character, error) {
	var c domain.Character
	var info, image, background pgtype.Text
	if err := row.Scan(&c.ID, &c.Name, &info, &image, &background); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan character: %w", err)
	}
	c.Info = textToStr(info)
	c.Image = textToStr(image)
	c.BackgroundImage = textToStr(background)
	return &c, nil
}

// InsertCharacter creates a character row
func (r *CampaignRepository) InsertCharacter(ctx context.Context, c *domain.Character) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO "Personajes" (nombre, informacion, imagen, imagen_fondo)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id_pj`,
		c.Name, strToText(c.Info), strToText(c.Image), strToText(c.BackgroundImage)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert character: %w", err)
	}
	return id, nil
}

// UpdateCharacter applies a partial update, keeping stored values for nil fields
func (r *CampaignRepository) UpdateCharacter(ctx context.Context, id int, upd repository.CharacterUpdate) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE "Personajes"
		    SET nombre       = COALESCE($1, nombre),
		        informacion  = COALESCE($2, informacion),
		        imagen       = COALESCE($3, imagen),
		        imagen_fondo = COALESCE($4, imagen_fondo)
		  WHERE id_pj = $5`,
		ptrToText(upd.Name), ptrToText(upd.Info), ptrToText(upd.Image), ptrToText(upd.BackgroundImage), id)
	if err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}

// ---- Quests ----

// GetQuests retrieves all quests ordered by id
func (r *CampaignRepository) GetQuests(ctx context.Context) ([]domain.Quest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id_mision, titulo, zona, npc, descripcion, importancia, recompensa, completada
		   FROM "Misiones"
		  ORDER BY id_mision ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get quests: %w", err)
	}
	defer rows.Close()

	quests := []domain.Quest{}
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		quests = append(quests, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quests: %w", err)
	}

	return quests, nil
}

// GetQuestByID retrieves a quest by id
func (r *CampaignRepository) GetQuestByID(ctx context.Context, id int) (*domain.Quest, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id_mision, titulo, zona, npc, descripcion, importancia, recompensa, completada
		   FROM "Misiones"
		  WHERE id_mision = $1
		  LIMIT 1`,
		id)

	q, err := scanQuest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestNotFound
		}
		return nil, err
	}
	return q, nil
}

func scanQuest(row pgx.Row) (*domain.Quest, error) {
	var q domain.Quest
	var zone, npc, description, reward pgtype.Text
	var completed int
	if err := row.Scan(&q.ID, &q.Title, &zone, &npc, &description, &q.Importance, &reward, &completed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan quest: %w", err)
	}
	q.Zone = textToStr(zone)
	q.Npc = textToStr(npc)
	q.Description = textToStr(description)
	q.Reward = textToStr(reward)
	q.Completed = completed != 0
	return &q, nil
}

// InsertQuest creates a quest row
func (r *CampaignRepository) InsertQuest(ctx context.Context, q *domain.Quest) (int, error) {
	completed := 0
	if q.Completed {
		completed = 1
	}

	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO "Misiones" (titulo, zona, npc, descripcion, importancia, recompensa, completada)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id_mision`,
		q.Title, strToText(q.Zone), strToText(q.Npc), strToText(q.Description),
		q.Importance, strToText(q.Reward), completed).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert quest: %w", err)
	}
	return id, nil
}

// UpdateQuest applies a partial update, keeping stored values for nil fields
func (r *CampaignRepository) UpdateQuest(ctx context.Context, id int, upd repository.QuestUpdate) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE "Misiones"
		    SET titulo      = COALESCE($1, titulo),
		        zona        = COALESCE($2, zona),
		        npc         = COALESCE($3, npc),
		        descripcion = COALESCE($4, descripcion),
		        importancia = COALESCE($5, importancia),
		        recompensa  = COALESCE($6, recompensa),
		        completada  = COALESCE($7, completada)
		  WHERE id_mision = $8`,
		ptrToText(upd.Title), ptrToText(upd.Zone), ptrToText(upd.Npc), ptrToText(upd.Description),
		ptrToInt4(upd.Importance), ptrToText(upd.Reward), boolPtrToInt4(upd.Completed), id)
	if err != nil {
		return fmt.Errorf("failed to update quest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuestNotFound
	}
	return nil
}

// ---- NPCs ----

// GetNpcs retrieves all NPCs ordered by name
func (r *CampaignRepository) GetNpcs(ctx context.Context) ([]domain.Npc, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id_npc, nombre, informacion, clasificacion, imagen, imagen_fondo
		   FROM "Npcs"
		  ORDER BY nombre ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get npcs: %w", err)
	}
	defer rows.Close()

	npcs := []domain.Npc{}
	for rows.Next() {
		n, err := scanNpc(rows)
		if err != nil {
			return nil, err
		}
		npcs = append(npcs, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read npcs: %w", err)
	}

	return npcs, nil
}

// GetNpcByID retrieves an NPC by id
func (r *CampaignRepository) GetNpcByID(ctx context.Context, id int) (*domain.Npc, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id_npc, nombre, informacion, clasificacion, imagen, imagen_fondo
		   FROM "Npcs"
		  WHERE id_npc = $1
		  LIMIT 1`,
		id)

	n, err := scanNpc(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNpcNotFound
		}
		return nil, err
	}
	return n, nil
}

func scanNpc(row pgx.Row) (*domain.Npc, error) {
	var n domain.Npc
	var info, classification, image, background pgtype.Text
	if err := row.Scan(&n.ID, &n.Name, &info, &classification, &image, &background); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan npc: %w", err)
	}
	n.Info = textToStr(info)
	n.Classification = textToStr(classification)
	n.Image = textToStr(image)
	n.BackgroundImage = textToStr(background)
	return &n, nil
}

// InsertNpc creates an NPC row
func (r *CampaignRepository) InsertNpc(ctx context.Context, n *domain.Npc) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO "Npcs" (nombre, informacion, clasificacion, imagen, imagen_fondo)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id_npc`,
		n.Name, strToText(n.Info), strToText(n.Classification),
		strToText(n.Image), strToText(n.BackgroundImage)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert npc: %w", err)
	}
	return id, nil
}

// UpdateNpc applies a partial update, keeping stored values for nil fields
func (r *CampaignRepository) UpdateNpc(ctx context.Context, id int, upd repository.NpcUpdate) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE "Npcs"
		    SET nombre        = COALESCE($1, nombre),
		        informacion   = COALESCE($2, informacion),
		        clasificacion = COALESCE($3, clasificacion),
		        imagen        = COALESCE($4, imagen),
		        imagen_fondo  = COALESCE($5, imagen_fondo)
		  WHERE id_npc = $6`,
		ptrToText(upd.Name), ptrToText(upd.Info), ptrToText(upd.Classification),
		ptrToText(upd.Image), ptrToText(upd.BackgroundImage), id)
	if err != nil {
		return fmt.Errorf("failed to update npc: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNpcNotFound
	}
	return nil
}

// ---- Lore ----

// GetLoreEntries retrieves all lore entries ordered by id
func (r *CampaignRepository) GetLoreEntries(ctx context.Context) ([]domain.LoreEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id_lore, titulo, texto
		   FROM "Lore"
		  ORDER BY id_lore ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get lore entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LoreEntry{}
	for rows.Next() {
		var l domain.LoreEntry
		var text pgtype.Text
		if err := rows.Scan(&l.ID, &l.Title, &text); err != nil {
			return nil, fmt.Errorf("failed to scan lore entry: %w", err)
		}
		l.Text = textToStr(text)
		entries = append(entries, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lore entries: %w", err)
	}

	return entries, nil
}

// InsertLoreEntry creates a lore row
func (r *CampaignRepository) InsertLoreEntry(ctx context.Context, l *domain.LoreEntry) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO "Lore" (titulo, texto)
		 VALUES ($1, $2)
		 RETURNING id_lore`,
		l.Title, strToText(l.Text)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert lore entry: %w", err)
	}
	return id, nil
}

// UpdateLoreEntry applies a partial update, keeping stored values for nil fields
func (r *CampaignRepository) UpdateLoreEntry(ctx context.Context, id int, upd repository.LoreUpdate) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE "Lore"
		    SET titulo = COALESCE($1, titulo),
		        texto  = COALESCE($2, texto)
		  WHERE id_lore = $3`,
		ptrToText(upd.Title), ptrToText(upd.Text), id)
	if err != nil {
		return fmt.Errorf("failed to update lore entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoreNotFound
	}
	return nil
}

// ---- Currency ----

// GetCoins retrieves all currency denominations ordered by id
func (r *CampaignRepository) GetCoins(ctx context.Context) ([]domain.Coin, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id_moneda, nombre, cantidad
		   FROM "Dinero"
		  ORDER BY id_moneda ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get coins: %w", err)
	}
	defer rows.Close()

	coins := []domain.Coin{}
	for rows.Next() {
		var c domain.Coin
		if err := rows.Scan(&c.ID, &c.Name, &c.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan coin: %w", err)
		}
		coins = append(coins, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read coins: %w", err)
	}

	return coins, nil
}

// SetCoinQuantity writes an absolute amount for one denomination
func (r *CampaignRepository) SetCoinQuantity(ctx context.Context, coinID, quantity int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE "Dinero"
		    SET cantidad = $1
		  WHERE id_moneda = $2`,
		quantity, coinID)
	if err != nil {
		return fmt.Errorf("failed to set coin quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCoinNotFound
	}
	return nil
}

// ---- Equipment ----

// GetEquipment retrieves the merged carrier listing: plain items and potions,
// joined with their owning character, ordered by character then item name
func (r *CampaignRepository) GetEquipment(ctx context.Context) ([]domain.EquipmentEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id_pj, p.nombre, i.id_item, i.nombre, i.info_item, 0 AS toxicidad, ip.cantidad, 'Item' AS tipo
		   FROM "Inventario_Y_Portador" ip
		   JOIN "Personajes" p ON p.id_pj = ip.id_personaje
		   JOIN "Inventario" i ON i.id_item = ip.id_item
		 UNION ALL
		 SELECT p.id_pj, p.nombre, pr.id_producto, pr.nombre, pr.descripcion, pr.toxicidad, pp.cantidad, 'Pocion' AS tipo
		   FROM "Pocion_Y_Portador" pp
		   JOIN "Personajes" p ON p.id_pj = pp.id_personaje
		   JOIN "Productos" pr ON pr.id_producto = pp.id_item
		  ORDER BY 2, 4`)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	defer rows.Close()

	entries := []domain.EquipmentEntry{}
	for rows.Next() {
		var e domain.EquipmentEntry
		var info pgtype.Text
		var kind string
		if err := rows.Scan(&e.CharacterID, &e.CharacterName, &e.ItemID, &e.ItemName, &info, &e.Toxicity, &e.Quantity, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan equipment entry: %w", err)
		}
		e.Info = textToStr(info)
		e.Kind = domain.CarryKind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read equipment: %w", err)
	}

	return entries, nil
}

// InsertCatalogItem creates a plain inventory item definition
func (r *CampaignRepository) InsertCatalogItem(ctx context.Context, name, info string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO "Inventario" (nombre, info_item)
		 VALUES ($1, $2)
		 RETURNING id_item`,
		name, strToText(info)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert catalog item: %w", err)
	}
	return id, nil
}

// AddCarriedItem increments an existing carrier row or inserts a new one
func (r *CampaignRepository) AddCarriedItem(ctx context.Context, characterID, itemID, quantity int, kind domain.CarryKind) error {
	table := `"Inventario_Y_Portador"`
	if kind == domain.CarryPotion {
		table = `"Pocion_Y_Portador"`
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE `+table+`
		    SET cantidad = cantidad + $1
		  WHERE id_personaje = $2
		    AND id_item = $3`,
		quantity, characterID, itemID)
	if err != nil {
		return fmt.Errorf("failed to increment carried item: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	if _, err := r.pool.Exec(ctx,
		`INSERT INTO `+table+` (id_personaje, id_item, cantidad)
		 VALUES ($1, $2, $3)`,
		characterID, itemID, quantity); err != nil {
		return fmt.Errorf("failed to insert carried item: %w", err)
	}
	return nil
}
