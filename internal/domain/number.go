package domain

import (
	"database/sql/driver"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number representa um valor numérico vindo de uma fonte sem tipagem forte
// (linhas do banco, payloads do painel). Valores ausentes, nulos ou não
// numéricos resultam em um Number inválido, lido como zero.
type Number struct {
	Float64 float64
	Valid   bool
}

// NewNumber cria um Number válido
func NewNumber(v float64) Number {
	return numberFromFloat(v)
}

// Float retorna o valor ou zero quando inválido
func (n Number) Float() float64 {
	if !n.Valid {
		return 0
	}
	return n.Float64
}

// Ptr retorna nil para valores inválidos
func (n Number) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// NumberFrom converte qualquer valor em Number sem nunca falhar
func NumberFrom(v any) Number {
	switch t := v.(type) {
	case nil:
		return Number{}
	case Number:
		return t
	case *Number:
		if t == nil {
			return Number{}
		}
		return *t
	case float64:
		return numberFromFloat(t)
	case float32:
		return numberFromFloat(float64(t))
	case int:
		return numberFromFloat(float64(t))
	case int32:
		return numberFromFloat(float64(t))
	case int64:
		return numberFromFloat(float64(t))
	case *float64:
		if t == nil {
			return Number{}
		}
		return numberFromFloat(*t)
	case json.Number:
		return ParseNumber(string(t))
	case string:
		return ParseNumber(t)
	case []byte:
		return ParseNumber(string(t))
	default:
		return Number{}
	}
}

// ParseNumber interpreta textos como "150", "150.5", "150,5", "1.234,56" e "R$ 20"
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return Number{}
	}

	if strings.Contains(s, ",") {
		// formato brasileiro: ponto como separador de milhar
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}
	}

	return numberFromFloat(f)
}

func numberFromFloat(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}
	}
	return Number{Float64: f, Valid: true}
}

// UnmarshalJSON aceita número, string numérica ou null. Qualquer outro
// conteúdo vira um Number inválido em vez de erro.
func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))

	if raw == "" || raw == "null" {
		*n = Number{}
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			*n = Number{}
			return nil
		}
		*n = ParseNumber(unquoted)
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*n = Number{}
		return nil
	}

	*n = numberFromFloat(f)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, n.Float64, 'f', -1, 64), nil
}

// Scan implementa sql.Scanner
func (n *Number) Scan(src any) error {
	*n = NumberFrom(src)
	return nil
}

// Value implementa driver.Valuer
func (n Number) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Float64, nil
}
