package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/mfcarvalho/painel-pedidos/internal/domain/errors"
	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
	"github.com/mfcarvalho/painel-pedidos/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on. Keeping it
// narrow lets tests substitute a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type statusRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Statuses() repository.StatusRepository {
	return &statusRepository{storage: s}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS usuario (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            is_admin BOOLEAN NOT NULL DEFAULT FALSE,
            criado_em TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	`CREATE TABLE IF NOT EXISTS descricao_status (
            categoria INT NOT NULL,
            status_id INT NOT NULL,
            descricao TEXT NOT NULL,
            PRIMARY KEY (categoria, status_id)
        )`,
	`CREATE TABLE IF NOT EXISTS produto (
            id SERIAL PRIMARY KEY,
            nome TEXT NOT NULL
        )`,
	`CREATE TABLE IF NOT EXISTS pedido (
            id SERIAL PRIMARY KEY,
            status_id INT NOT NULL,
            valor_total NUMERIC(12,2) NOT NULL CHECK (valor_total >= 0),
            metodo_pagamento TEXT NOT NULL,
            usuario_id BIGINT NOT NULL,
            data_criacao TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	`CREATE TABLE IF NOT EXISTS pedido_item (
            id SERIAL PRIMARY KEY,
            pedido_id BIGINT NOT NULL REFERENCES pedido(id),
            produto_id BIGINT NOT NULL REFERENCES produto(id),
            quantidade INT NOT NULL CHECK (quantidade > 0),
            preco_unitario NUMERIC(12,2) NOT NULL CHECK (preco_unitario >= 0)
        )`,
	`CREATE INDEX IF NOT EXISTS idx_pedido_data ON pedido(data_criacao DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_pedido_item_pedido ON pedido_item(pedido_id)`,
	`CREATE OR REPLACE FUNCTION is_admin(p_usuario_id BIGINT) RETURNS BOOLEAN AS $$
            SELECT COALESCE((SELECT is_admin FROM usuario WHERE id = p_usuario_id), FALSE)
        $$ LANGUAGE sql STABLE`,
	`CREATE OR REPLACE FUNCTION update_pedido_status(p_pedido_id BIGINT, p_status_id INT) RETURNS TEXT AS $$
        BEGIN
            IF NOT EXISTS (SELECT 1 FROM descricao_status WHERE status_id = p_status_id) THEN
                RETURN 'status_invalido';
            END IF;
            UPDATE pedido SET status_id = p_status_id WHERE id = p_pedido_id;
            IF NOT FOUND THEN
                RETURN 'pedido_nao_encontrado';
            END IF;
            RETURN 'ok';
        END
        $$ LANGUAGE plpgsql`,
	`CREATE OR REPLACE FUNCTION notifica_pedido_inserido() RETURNS TRIGGER AS $$
        BEGIN
            PERFORM pg_notify('pedido_inserido', NEW.id::text);
            RETURN NEW;
        END
        $$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS trg_pedido_inserido ON pedido`,
	`CREATE TRIGGER trg_pedido_inserido AFTER INSERT ON pedido
            FOR EACH ROW EXECUTE FUNCTION notifica_pedido_inserido()`,
	`INSERT INTO descricao_status (categoria, status_id, descricao) VALUES
            (1, 200, 'Pendente'),
            (1, 201, 'Em Processamento'),
            (1, 202, 'Concluído'),
            (1, 203, 'Cancelado'),
            (2, 300, 'Aguardando Pagamento'),
            (2, 301, 'Pagamento Confirmado')
        ON CONFLICT DO NOTHING`,
}

func (s *Storage) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// --- UserRepository implementation ---

const (
	createUserQuery = `INSERT INTO usuario (login, password_hash) VALUES ($1, $2) RETURNING id, is_admin, criado_em`

	getUserByLoginQuery = `SELECT id, login, password_hash, is_admin, criado_em FROM usuario WHERE login=$1`

	getUserByIDQuery = `SELECT id, login, password_hash, is_admin, criado_em FROM usuario WHERE id=$1`

	isAdminQuery = `SELECT is_admin($1)`
)

func (r *userRepository) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, createUserQuery, login, passwordHash).Scan(&u.ID, &u.Admin, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, getUserByLoginQuery, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Admin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, getUserByIDQuery, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Admin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// IsAdmin runs the server-side authorization predicate.
func (r *userRepository) IsAdmin(ctx context.Context, id int64) (bool, error) {
	var admin bool
	if err := r.storage.pool.QueryRow(ctx, isAdminQuery, id).Scan(&admin); err != nil {
		return false, err
	}
	return admin, nil
}

// --- OrderRepository implementation ---

const (
	// The lateral join picks the lowest-category description so the joined
	// label stays single-valued even when a status id exists in several
	// categories.
	listOrdersQuery = `SELECT p.id, p.status_id, p.valor_total, p.metodo_pagamento, p.usuario_id, p.data_criacao, COALESCE(ds.descricao, '')
                   FROM pedido p
                   LEFT JOIN LATERAL (
                       SELECT descricao FROM descricao_status
                       WHERE status_id = p.status_id
                       ORDER BY categoria
                       LIMIT 1
                   ) ds ON TRUE
                   ORDER BY p.data_criacao DESC`

	listItemsQuery = `SELECT i.pedido_id, i.quantidade, i.preco_unitario, pr.nome
                   FROM pedido_item i
                   JOIN produto pr ON pr.id = i.produto_id
                   ORDER BY i.pedido_id, i.id`

	updateStatusQuery = `SELECT update_pedido_status($1, $2)`
)

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, listOrdersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	index := make(map[int64]int)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.StatusID, &o.TotalValue, &o.PaymentMethod, &o.CustomerID, &o.CreatedAt, &o.StatusLabel); err != nil {
			return nil, err
		}
		index[o.ID] = len(result)
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, result, index); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) attachItems(ctx context.Context, orders []model.Order, index map[int64]int) error {
	if len(orders) == 0 {
		return nil
	}

	rows, err := r.storage.pool.Query(ctx, listItemsQuery)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var item model.LineItem
		if err := rows.Scan(&orderID, &item.Quantity, &item.UnitPrice, &item.ProductName); err != nil {
			return err
		}
		if pos, ok := index[orderID]; ok {
			orders[pos].Items = append(orders[pos].Items, item)
		}
	}
	return rows.Err()
}

// UpdateStatus invokes the update_pedido_status procedure and maps its
// outcome to domain errors.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, statusID int) error {
	var outcome string
	if err := r.storage.pool.QueryRow(ctx, updateStatusQuery, orderID, statusID).Scan(&outcome); err != nil {
		return err
	}
	switch outcome {
	case "ok":
		return nil
	case "pedido_nao_encontrado":
		return domainErrors.ErrNotFound
	case "status_invalido":
		return domainErrors.ErrInvalidStatus
	default:
		return fmt.Errorf("update_pedido_status: unexpected outcome %q", outcome)
	}
}

// --- StatusRepository implementation ---

const listStatusesQuery = `SELECT categoria, status_id, descricao
                   FROM descricao_status
                   WHERE categoria = ANY($1)
                   ORDER BY categoria, status_id`

func (r *statusRepository) ListByCategories(ctx context.Context, categories []int) ([]model.StatusEntry, error) {
	rows, err := r.storage.pool.Query(ctx, listStatusesQuery, categories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.StatusEntry
	for rows.Next() {
		var entry model.StatusEntry
		if err := rows.Scan(&entry.Category, &entry.StatusID, &entry.Description); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
