package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"

	"github.com/jhoicas/categorizador-gpc/internal/application/ports"
	"github.com/jhoicas/categorizador-gpc/internal/domain"
)

// Verificar en tiempo de compilación que GeminiService implementa TextGenerator.
var _ ports.TextGenerator = (*GeminiService)(nil)

// DefaultGeminiModel modelo usado si no se configura GEMINI_MODEL.
const DefaultGeminiModel = "gemini-2.5-flash-preview-04-17"

// GeminiService adaptador que implementa TextGenerator con el SDK de Google Gemini.
// Una llamada síncrona por invocación: sin reintentos, sin streaming y sin timeout propio.
type GeminiService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiService construye el cliente. Con apiKey vacío devuelve domain.ErrUnavailable;
// el servicio HTTP arranca igualmente y responde 503.
func NewGeminiService(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GOOGLE_API_KEY no configurado", domain.ErrUnavailable)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("crear cliente Gemini: %w", err)
	}
	return &GeminiService{client: client, model: client.GenerativeModel(model)}, nil
}

// Close libera las conexiones del cliente.
func (s *GeminiService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Generate envía el prompt y devuelve el texto de la primera candidata.
func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyError(err)
	}
	return responseText(resp)
}

// responseText concatena las partes de texto de la primera candidata.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", domain.ErrEmptyResponse
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return "", domain.ErrEmptyResponse
	}
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", domain.ErrEmptyResponse
	}
	return sb.String(), nil
}

// classifyError traduce los errores del SDK a *domain.ProviderError con el mensaje original.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("llamada a Gemini interrumpida: %w", err)
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return &domain.ProviderError{StatusCode: http.StatusBadRequest, Message: blocked.Error(), Err: err}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		msg := gErr.Message
		if msg == "" {
			msg = gErr.Error()
		}
		return &domain.ProviderError{StatusCode: gErr.Code, Message: msg, Err: err}
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.HTTPCode()
		if status <= 0 && apiErr.GRPCStatus() != nil {
			status = grpcToHTTP(apiErr.GRPCStatus().Code())
		}
		return &domain.ProviderError{StatusCode: status, Message: apiErr.Error(), Err: err}
	}

	return &domain.ProviderError{Message: err.Error(), Err: err}
}

func grpcToHTTP(code codes.Code) int {
	switch code {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
