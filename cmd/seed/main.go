// seed carga un catálogo (bodegas, ubicaciones y productos) desde un CSV y emite un JWT de desarrollo.
//
// Uso: go run ./cmd/seed [-charset latin1] catalogo.csv
//
// Formato, una fila por registro (la primera columna indica el tipo):
//
//	warehouse,<código bodega>,,<nombre>,<dirección>
//	location,<código bodega>,<código ubicación>,<nombre>
//	product,,<sku>,<nombre>,<unidad>,<costo>,<stock mínimo>,<categoría>
//
// Las líneas vacías y las que empiezan con # se ignoran. Los registros que ya existen se omiten.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-engine/internal/application/dto"
	"github.com/jhoicas/stock-engine/internal/application/inventory"
	"github.com/jhoicas/stock-engine/internal/application/usecase"
	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/infrastructure/memory"
	"github.com/jhoicas/stock-engine/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-engine/pkg/config"
	"github.com/jhoicas/stock-engine/pkg/jwt"
	"github.com/jhoicas/stock-engine/pkg/logger"
)

const seedActor = "seed"

// summary conteo de registros creados y omitidos.
type summary struct {
	Created map[string]int
	Skipped map[string]int
}

func newSummary() *summary {
	return &summary{Created: map[string]int{}, Skipped: map[string]int{}}
}

// loader aplica las filas del CSV a través de los casos de uso del catálogo.
type loader struct {
	repos      inventory.Repos
	warehouses *usecase.WarehouseUseCase
	locations  *usecase.LocationUseCase
	products   *usecase.ProductUseCase
}

func newLoader(repos inventory.Repos) *loader {
	return &loader{
		repos:      repos,
		warehouses: usecase.NewWarehouseUseCase(repos.Warehouses, repos.Locations),
		locations:  usecase.NewLocationUseCase(repos.Locations, repos.Warehouses, repos.Stock, repos.Ledger),
		products:   usecase.NewProductUseCase(repos.Products, repos.Stock, repos.Ledger),
	}
}

// decodeReader envuelve r con el decodificador del charset indicado ("utf8" o "latin1").
func decodeReader(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf8", "utf-8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("charset no soportado: %s", charset)
}

// Load lee todas las filas y las aplica en orden. Se detiene en el primer error que no sea duplicado.
func (l *loader) Load(ctx context.Context, r io.Reader) (*summary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	sum := newSummary()
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return sum, nil
		}
		if err != nil {
			return sum, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		kind := strings.ToLower(strings.TrimSpace(rec[0]))
		err = l.apply(ctx, kind, rec)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			sum.Skipped[kind]++
		case err != nil:
			return sum, fmt.Errorf("línea %d (%s): %w", line, kind, err)
		default:
			sum.Created[kind]++
		}
	}
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

func decimalField(rec []string, i int, name string) (decimal.Decimal, error) {
	s := field(rec, i)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, domain.Invalid(name, "número inválido: "+s)
	}
	return d, nil
}

func (l *loader) apply(ctx context.Context, kind string, rec []string) error {
	switch kind {
	case "warehouse":
		_, err := l.warehouses.Create(ctx, dto.CreateWarehouseRequest{
			ShortCode: strings.ToUpper(field(rec, 1)),
			Name:      field(rec, 3),
			Address:   field(rec, 4),
		})
		return err
	case "location":
		wh, err := l.repos.Warehouses.GetByShortCode(ctx, strings.ToUpper(field(rec, 1)))
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.ErrWarehouseNotFound
		}
		_, err = l.locations.Create(ctx, wh.ID, dto.CreateLocationRequest{
			ShortCode: field(rec, 2),
			Name:      field(rec, 3),
		})
		return err
	case "product":
		cost, err := decimalField(rec, 5, "cost")
		if err != nil {
			return err
		}
		minStock, err := decimalField(rec, 6, "min_stock_level")
		if err != nil {
			return err
		}
		unit := field(rec, 4)
		if unit == "" {
			unit = "UND"
		}
		_, err = l.products.Create(ctx, dto.CreateProductRequest{
			SKU:           field(rec, 2),
			Name:          field(rec, 3),
			UnitMeasure:   unit,
			Cost:          cost,
			MinStockLevel: minStock,
			Category:      field(rec, 7),
		})
		return err
	}
	return domain.Invalid("kind", "tipo de registro desconocido: "+kind)
}

func main() {
	charset := flag.String("charset", "utf8", "codificación del CSV: utf8, latin1 o windows-1252")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-charset latin1] catalogo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	ctx := context.Background()

	var repos inventory.Repos
	if cfg.Storage.Driver == "memory" {
		repos = memory.NewStore().Repos()
		log.Warn().Msg("STORAGE_DRIVER=memory: solo se valida el archivo")
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("aplicar esquema")
			}
		}
		repos = postgres.NewRepos(pool)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()
	r, err := decodeReader(f, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("charset")
	}

	sum, err := newLoader(repos).Load(ctx, r)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo")
	}
	log.Info().
		Interface("creados", sum.Created).
		Interface("omitidos", sum.Skipped).
		Msg("catálogo cargado")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: no se genera token de desarrollo")
		return
	}
	token, err := jwt.Generate(cfg.JWT.Secret, seedActor, seedActor, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("generar token")
	}
	fmt.Println("Authorization: Bearer " + token)
}
