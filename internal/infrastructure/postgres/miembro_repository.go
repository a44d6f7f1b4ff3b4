package postgres

import (
	"context"
	"fmt"

	"github.com/sosmedical/clubsos-api/internal/domain"
	"github.com/sosmedical/clubsos-api/internal/domain/entity"
	"github.com/sosmedical/clubsos-api/internal/domain/repository"
)

// Asegura que MiembroRepo implementa repository.MiembroRepository.
var _ repository.MiembroRepository = (*MiembroRepo)(nil)

// MiembroRepo implementación del puerto MiembroRepository sobre PostgreSQL.
type MiembroRepo struct {
	q Querier
}

// NewMiembroRepository construye el adaptador de persistencia para miembros.
// Pasar pool o tx (Querier).
func NewMiembroRepository(q Querier) *MiembroRepo {
	return &MiembroRepo{q: q}
}

const miembroColumns = `id, empresa_id, auth_user_id, parentesco, nombre_completo,
	documento_identidad, fecha_nacimiento, sexo, telefono, correo,
	titular_miembro_id, rol, activo, created_at, updated_at`

func scanMiembro(row interface{ Scan(...any) error }) (*entity.Miembro, error) {
	var m entity.Miembro
	err := row.Scan(
		&m.ID, &m.EmpresaID, &m.AuthUserID, &m.Parentesco, &m.NombreCompleto,
		&m.DocumentoIdentidad, &m.FechaNacimiento, &m.Sexo, &m.Telefono, &m.Correo,
		&m.TitularMiembroID, &m.Rol, &m.Activo, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un nuevo miembro. Devuelve domain.ErrMiembroYaExiste si la
// identidad ya tiene un miembro (constraint único sobre auth_user_id).
func (r *MiembroRepo) Create(ctx context.Context, m *entity.Miembro) error {
	query := `
		INSERT INTO miembros (` + miembroColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.EmpresaID, m.AuthUserID, m.Parentesco, m.NombreCompleto,
		m.DocumentoIdentidad, m.FechaNacimiento, m.Sexo, m.Telefono, m.Correo,
		m.TitularMiembroID, m.Rol, m.Activo, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMiembroYaExiste
		}
		return fmt.Errorf("insert miembro: %w", err)
	}
	return nil
}

// GetByID obtiene un miembro por ID.
func (r *MiembroRepo) GetByID(ctx context.Context, id string) (*entity.Miembro, error) {
	query := `SELECT ` + miembroColumns + ` FROM miembros WHERE id = $1`
	m, err := scanMiembro(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get miembro: %w", err)
	}
	return m, nil
}

// GetByAuthUserID obtiene el miembro vinculado a una identidad autenticada.
func (r *MiembroRepo) GetByAuthUserID(ctx context.Context, authUserID string) (*entity.Miembro, error) {
	query := `SELECT ` + miembroColumns + ` FROM miembros WHERE auth_user_id = $1`
	m, err := scanMiembro(r.q.QueryRow(ctx, query, authUserID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get miembro by auth_user_id: %w", err)
	}
	return m, nil
}

// GetByCorreo obtiene un miembro por correo (ya normalizado a minúsculas).
func (r *MiembroRepo) GetByCorreo(ctx context.Context, correo string) (*entity.Miembro, error) {
	query := `SELECT ` + miembroColumns + ` FROM miembros WHERE correo = $1`
	m, err := scanMiembro(r.q.QueryRow(ctx, query, correo))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get miembro by correo: %w", err)
	}
	return m, nil
}

// BuscarTitulares lista los titulares de la empresa con coincidencia exacta
// de nombre y de documento normalizado (sin guiones ni espacios, mayúsculas).
// La normalización del documento almacenado se hace en SQL para tolerar datos
// cargados con formato.
func (r *MiembroRepo) BuscarTitulares(ctx context.Context, empresaID, nombreCompleto, documento string) ([]*entity.Miembro, error) {
	query := `
		SELECT ` + miembroColumns + `
		FROM miembros
		WHERE empresa_id = $1
		  AND parentesco = 'titular'
		  AND upper(nombre_completo) = upper($2)
		  AND upper(regexp_replace(documento_identidad, '[^a-zA-Z0-9]', '', 'g')) = $3`
	rows, err := r.q.Query(ctx, query, empresaID, nombreCompleto, documento)
	if err != nil {
		return nil, fmt.Errorf("buscar titulares: %w", err)
	}
	defer rows.Close()

	var list []*entity.Miembro
	for rows.Next() {
		m, err := scanMiembro(rows)
		if err != nil {
			return nil, fmt.Errorf("scan titular: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListByTitular lista los dependientes vinculados a un titular.
func (r *MiembroRepo) ListByTitular(ctx context.Context, titularMiembroID string) ([]*entity.Miembro, error) {
	query := `
		SELECT ` + miembroColumns + `
		FROM miembros WHERE titular_miembro_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, titularMiembroID)
	if err != nil {
		return nil, fmt.Errorf("list miembros by titular: %w", err)
	}
	defer rows.Close()

	var list []*entity.Miembro
	for rows.Next() {
		m, err := scanMiembro(rows)
		if err != nil {
			return nil, fmt.Errorf("scan miembro: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update actualiza un miembro existente.
func (r *MiembroRepo) Update(ctx context.Context, m *entity.Miembro) error {
	query := `
		UPDATE miembros SET
			nombre_completo = $2, documento_identidad = $3, fecha_nacimiento = $4,
			sexo = $5, telefono = $6, correo = $7, activo = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.NombreCompleto, m.DocumentoIdentidad, m.FechaNacimiento,
		m.Sexo, m.Telefono, m.Correo, m.Activo, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCorreoRegistrado
		}
		return fmt.Errorf("update miembro: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMiembroNotFound
	}
	return nil
}
