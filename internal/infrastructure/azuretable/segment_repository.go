// Package azuretable adaptador de la taxonomía sobre Azure Table Storage.
package azuretable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/jhoicas/categorizador-gpc/internal/domain"
	"github.com/jhoicas/categorizador-gpc/internal/domain/entity"
	"github.com/jhoicas/categorizador-gpc/internal/domain/repository"
)

var _ repository.SegmentRepository = (*SegmentRepository)(nil)

const (
	keyPartition = "PartitionKey"
	keyRow       = "RowKey"
	keyTimestamp = "Timestamp"
)

// SegmentRepository implementa SegmentRepository con el SDK aztables.
type SegmentRepository struct {
	service    *aztables.ServiceClient
	labelField string
}

// ClientOptions opciones del SDK sin reintentos: cada operación es un único intento.
func ClientOptions() *aztables.ClientOptions {
	return &aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{MaxRetries: -1},
		},
	}
}

// NewSegmentRepository crea el adaptador desde la cadena de conexión de la cuenta de almacenamiento.
func NewSegmentRepository(connectionString, labelField string) (*SegmentRepository, error) {
	if strings.TrimSpace(connectionString) == "" {
		return nil, fmt.Errorf("%w: AZURE_STORAGE_CONNECTION_STRING no configurada", domain.ErrConfig)
	}
	svc, err := aztables.NewServiceClientFromConnectionString(connectionString, ClientOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: cadena de conexión de Azure inválida: %v", domain.ErrConfig, err)
	}
	return NewSegmentRepositoryFromClient(svc, labelField), nil
}

// NewSegmentRepositoryFromClient usa un ServiceClient ya construido.
func NewSegmentRepositoryFromClient(svc *aztables.ServiceClient, labelField string) *SegmentRepository {
	if labelField == "" {
		labelField = entity.DefaultLabelField
	}
	return &SegmentRepository{service: svc, labelField: labelField}
}

// ListAll consulta la tabla sin filtro y recorre todas las páginas.
// Si una página falla, devuelve lo leído hasta ese punto junto al error.
func (r *SegmentRepository) ListAll(ctx context.Context, collection string) ([]*entity.SegmentRecord, error) {
	table := r.service.NewClient(collection)
	pager := table.NewListEntitiesPager(nil)

	var out []*entity.SegmentRecord
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return out, classify(err)
		}
		for _, raw := range page.Entities {
			rec, err := r.decode(raw)
			if err != nil {
				return out, fmt.Errorf("%w: entidad ilegible: %v", domain.ErrTableTransport, err)
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

// Upsert inserta o reemplaza la entidad completa (UpdateModeReplace).
func (r *SegmentRepository) Upsert(ctx context.Context, collection string, record *entity.SegmentRecord) error {
	body, err := json.Marshal(r.encode(record))
	if err != nil {
		return fmt.Errorf("serializar entidad %s/%s: %w", record.PartitionKey, record.RowKey, err)
	}
	table := r.service.NewClient(collection)
	_, err = table.UpsertEntity(ctx, body, &aztables.UpsertEntityOptions{UpdateMode: aztables.UpdateModeReplace})
	if err != nil {
		return classify(err)
	}
	return nil
}

// CreateTable crea la tabla si no existe.
func (r *SegmentRepository) CreateTable(ctx context.Context, collection string) error {
	_, err := r.service.CreateTable(ctx, collection, nil)
	if err == nil {
		return nil
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) && respErr.StatusCode == http.StatusConflict {
		return nil
	}
	return classify(err)
}

func (r *SegmentRepository) encode(rec *entity.SegmentRecord) map[string]any {
	m := make(map[string]any, len(rec.Extra)+3)
	for k, v := range rec.Extra {
		m[k] = v
	}
	m[keyPartition] = rec.PartitionKey
	m[keyRow] = rec.RowKey
	m[r.labelField] = rec.Label
	return m
}

func (r *SegmentRepository) decode(raw []byte) (*entity.SegmentRecord, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	rec := &entity.SegmentRecord{Extra: make(map[string]any)}
	for k, v := range m {
		switch {
		case k == keyPartition:
			rec.PartitionKey = asString(v)
		case k == keyRow:
			rec.RowKey = asString(v)
		case k == r.labelField:
			rec.Label = asString(v)
		case k == keyTimestamp, strings.HasPrefix(k, "odata."), strings.Contains(k, "@odata."):
			// metadatos del servicio
		default:
			rec.Extra[k] = v
		}
	}
	return rec, nil
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// classify traduce errores del SDK: 401/403 → ErrTableAuth, resto → ErrTableTransport.
func classify(err error) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		if respErr.StatusCode == http.StatusUnauthorized || respErr.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: %s (HTTP %d)", domain.ErrTableAuth, respErr.ErrorCode, respErr.StatusCode)
		}
		return fmt.Errorf("%w: %s (HTTP %d)", domain.ErrTableTransport, respErr.ErrorCode, respErr.StatusCode)
	}
	return fmt.Errorf("%w: %v", domain.ErrTableTransport, err)
}
