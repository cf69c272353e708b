// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"strings"
	"time"
)

type Platform string

const (
	PlatformGoogle Platform = "google"
	PlatformMeta   Platform = "meta"
)

// Platforms lista as plataformas na ordem em que são exibidas no painel
var Platforms = []Platform{PlatformGoogle, PlatformMeta}

// RechargeTypeContinuous marca recarga automática (cartão), sem data de esgotamento
const RechargeTypeContinuous = "continuo"

// PlatformTracking guarda o acompanhamento de saldo de uma plataforma
type PlatformTracking struct {
	Saldo          Number     `json:"saldo"`
	ValorDiario    Number     `json:"valor_diario"`
	ProximaRecarga *time.Time `json:"proxima_recarga"`
	RecargaTipo    *string    `json:"recarga_tipo"`
}

// IsContinuous indica recarga contínua (cobrança automática)
func (p PlatformTracking) IsContinuous() bool {
	if p.RecargaTipo == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*p.RecargaTipo), RechargeTypeContinuous)
}

// TrackingRecord é a linha de acompanhamento de um cliente, uma por cliente
type TrackingRecord struct {
	ID         string           `json:"id"`
	ClientID   string           `json:"client_id"`
	ClientName string           `json:"client_name"`
	ClientLogo *string          `json:"client_logo"`
	AgencyID   string           `json:"agency_id"`
	ManagerID  *int             `json:"manager_id"`
	Google     PlatformTracking `json:"google"`
	Meta       PlatformTracking `json:"meta"`
	AdsActive  *bool            `json:"ads_active"` // apenas Meta
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Platform retorna o acompanhamento da plataforma informada
func (r *TrackingRecord) Platform(p Platform) PlatformTracking {
	if p == PlatformMeta {
		return r.Meta
	}
	return r.Google
}

// TrackingScope restringe as linhas a uma agência e, opcionalmente, a um gestor.
// AgencyID vazio significa todas as agências (uso interno dos agendadores).
type TrackingScope struct {
	AgencyID  string
	ManagerID *int
}

type PlatformTrackingUpdate struct {
	Saldo          *Number `json:"saldo,omitempty"`
	ValorDiario    *Number `json:"valor_diario,omitempty"`
	ProximaRecarga *string `json:"proxima_recarga,omitempty"` // yyyy-mm-dd, vazio limpa a data
	RecargaTipo    *string `json:"recarga_tipo,omitempty"`
}

func (u *PlatformTrackingUpdate) IsEmpty() bool {
	return u == nil || (u.Saldo == nil && u.ValorDiario == nil && u.ProximaRecarga == nil && u.RecargaTipo == nil)
}

type UpdateTrackingRequest struct {
	ClientID  string                  `json:"client_id"`
	Google    *PlatformTrackingUpdate `json:"google,omitempty"`
	Meta      *PlatformTrackingUpdate `json:"meta,omitempty"`
	AdsActive *bool                   `json:"ads_active,omitempty"`
}

func (r *UpdateTrackingRequest) IsEmpty() bool {
	return r.Google.IsEmpty() && r.Meta.IsEmpty() && r.AdsActive == nil
}
