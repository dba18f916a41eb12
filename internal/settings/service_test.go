package settings

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	stored map[string]*Settings
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{stored: make(map[string]*Settings)}
}

func (f *fakeRepo) Get(_ context.Context, tenantID string) (*Settings, error) {
	s, ok := f.stored[tenantID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeRepo) Upsert(_ context.Context, s Settings) error {
	f.stored[s.TenantID] = &s
	return nil
}

func TestGetFallsBackToDefaults(t *testing.T) {
	svc := NewService(newFakeRepo())

	s, err := svc.Get(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, "Mi Taller", s.BusinessName)
	require.Equal(t, 0.0, s.CardSurchargePct)
	require.NotEmpty(t, s.IntakeChecklist)
}

func TestSaveThenGet(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Save(context.Background(), "t1", SaveSettingsRequest{
		BusinessName:         "Taller Centro",
		CardSurchargePct:     10,
		TransferSurchargePct: 5,
		IntakeChecklist:      []string{"enciende", "pantalla"},
	})
	require.NoError(t, err)

	s, err := svc.Get(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, "Taller Centro", s.BusinessName)
	require.Equal(t, 10.0, s.CardSurchargePct)
	require.Equal(t, []string{"enciende", "pantalla"}, s.IntakeChecklist)
}

func TestSaveKeepsPrintSettings(t *testing.T) {
	svc := NewService(newFakeRepo())
	disclaimer := "No nos responsabilizamos por equipos no retirados en 30 días"
	footer := "Gracias por su visita"

	_, err := svc.Save(context.Background(), "t1", SaveSettingsRequest{
		BusinessName:      "Taller Centro",
		ReceiptDisclaimer: &disclaimer,
		TicketFooter:      &footer,
		PrintFormat:       PrintFormatA4,
	})
	require.NoError(t, err)

	s, err := svc.Get(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, disclaimer, *s.ReceiptDisclaimer)
	require.Equal(t, footer, *s.TicketFooter)
	require.Equal(t, PrintFormatA4, s.PrintFormat)
}

func TestSaveDefaultsPrintFormatToTicket(t *testing.T) {
	svc := NewService(newFakeRepo())

	saved, err := svc.Save(context.Background(), "t1", SaveSettingsRequest{BusinessName: "Taller Centro"})
	require.NoError(t, err)
	require.Equal(t, PrintFormatTicket, saved.PrintFormat)

	defaults, err := svc.Get(context.Background(), "fresh")
	require.NoError(t, err)
	require.Equal(t, PrintFormatTicket, defaults.PrintFormat)
}

func TestSaveRequestRejectsUnknownPrintFormat(t *testing.T) {
	v := validator.New()

	require.Error(t, v.Struct(SaveSettingsRequest{BusinessName: "Taller Centro", PrintFormat: "letter"}))
	require.NoError(t, v.Struct(SaveSettingsRequest{BusinessName: "Taller Centro", PrintFormat: PrintFormatTicket}))
	require.NoError(t, v.Struct(SaveSettingsRequest{BusinessName: "Taller Centro"}))
}

func TestSaveRejectsOversizedChecklist(t *testing.T) {
	svc := NewService(newFakeRepo())

	list := make([]string, MaxChecklistOptions+1)
	for i := range list {
		list[i] = "opcion"
	}

	_, err := svc.Save(context.Background(), "t1", SaveSettingsRequest{
		BusinessName:    "Taller Centro",
		IntakeChecklist: list,
	})
	require.ErrorIs(t, err, ErrChecklistTooLong)
}

func TestSurchargeConfigUsesStoredPercents(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Save(context.Background(), "t1", SaveSettingsRequest{
		BusinessName:         "Taller Centro",
		CardSurchargePct:     12,
		TransferSurchargePct: 3,
	})
	require.NoError(t, err)

	cfg, err := svc.SurchargeConfig(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, 12.0, cfg.CardPct)
	require.Equal(t, 3.0, cfg.TransferPct)
}

func TestSurchargeConfigDefaultsToZero(t *testing.T) {
	svc := NewService(newFakeRepo())

	cfg, err := svc.SurchargeConfig(context.Background(), "fresh")
	require.NoError(t, err)
	require.Zero(t, cfg.CardPct)
	require.Zero(t, cfg.TransferPct)
}
