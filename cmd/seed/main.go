package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/config"
	dbpkg "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/db"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/logger"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/validators"
)

const demoPassword = "password123"

func main() {
	fake := flag.Int("fake", 0, "extra clients (with one car each) generated with fake data")
	reset := flag.Bool("reset", false, "remove the JSON document before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	logg := logger.New(cfg.Env)
	defer func() { _ = logg.Sync() }()

	if *reset {
		if cfg.StoreDriver != config.DriverJSON {
			logg.Fatal("-reset only supports the json driver", zap.String("driver", cfg.StoreDriver))
		}
		if err := os.Remove(cfg.StorePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logg.Fatal("reset failed", zap.Error(err))
		}
		logg.Info("store reset", zap.String("path", cfg.StorePath))
	}

	st, err := dbpkg.OpenStore(cfg, logg)
	if err != nil {
		logg.Fatal("open store", zap.Error(err))
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		logg.Fatal("hash password", zap.Error(err))
	}

	s := &seeder{store: st, password: string(hashed), today: time.Now()}
	if err := s.fixtures(ctx); err != nil {
		logg.Fatal("seed fixtures", zap.Error(err))
	}
	if *fake > 0 {
		if err := s.fakeClients(ctx, *fake); err != nil {
			logg.Fatal("seed fake clients", zap.Error(err))
		}
	}

	logg.Info("seed complete",
		zap.String("admin", "admin/"+demoPassword),
		zap.String("technician", "technician/"+demoPassword),
		zap.String("client", "ion.popescu/"+demoPassword),
		zap.Int("fake_clients", *fake),
	)
}

type seeder struct {
	store    store.Store
	password string
	today    time.Time
}

func (s *seeder) day(offset int) string {
	return s.today.AddDate(0, 0, offset).Format("2006-01-02")
}

func (s *seeder) fixtures(ctx context.Context) error {
	admins := store.NewRepo[models.Admin, models.AdminID](s.store, store.Admins)
	clients := store.NewRepo[models.Client, models.ClientID](s.store, store.Clients)
	cars := store.NewRepo[models.Car, models.CarID](s.store, store.Cars)
	parts := store.NewRepo[models.Part, models.PartID](s.store, store.Parts)
	appointments := store.NewRepo[models.Appointment, models.AppointmentID](s.store, store.Appointments)
	records := store.NewRepo[models.ServiceRecord, models.ServiceRecordID](s.store, store.ServiceRecords)

	if exists, err := admins.Exists(ctx, store.Filter{"username": "admin"}); err != nil {
		return err
	} else if exists {
		return errors.New("fixtures already present; run with -reset")
	}

	// --------------------------------------------------
	// Staff
	// --------------------------------------------------
	for _, a := range []models.Admin{
		{Username: "admin", FirstName: "Administrator", LastName: "Principal", Email: "admin@autoservice.ro", Role: models.RoleAdmin},
		{Username: "technician", FirstName: "Mihai", LastName: "Stan", Email: "mihai.stan@autoservice.ro", Role: models.RoleTechnician},
	} {
		a.Password, a.Active = s.password, true
		if _, err := admins.Create(ctx, &a); err != nil {
			return fmt.Errorf("admin %s: %w", a.Username, err)
		}
	}

	// --------------------------------------------------
	// Clients and cars
	// --------------------------------------------------
	type clientSeed struct {
		client models.Client
		cars   []models.Car
	}
	seeds := []clientSeed{
		{
			client: models.Client{Username: "ion.popescu", FirstName: "Ion", LastName: "Popescu",
				PhoneNumbers: []string{"0722123456", "0312345678"}, Email: "ion.popescu@email.com", Active: true},
			cars: []models.Car{
				{LicensePlate: "B 123 ABC", ChassisNumber: "WVWZZZ1JZXW123456", Brand: "Volkswagen", Model: "Golf",
					Year: 2020, EngineType: "diesel", EngineCapacity: 1968, HorsePower: 150, Active: true},
				{LicensePlate: "B 456 DEF", ChassisNumber: "WVWZZZ1JZXW789012", Brand: "Audi", Model: "A4",
					Year: 2022, EngineType: "hybrid", EngineCapacity: 2000, HorsePower: 204, Active: true},
			},
		},
		{
			client: models.Client{Username: "maria.ionescu", FirstName: "Maria", LastName: "Ionescu",
				PhoneNumbers: []string{"0733987654"}, Email: "maria.ionescu@email.com", Active: true},
			cars: []models.Car{
				{LicensePlate: "CJ 01 MAR", ChassisNumber: "WBAXXX1234567890", Brand: "BMW", Model: "X5",
					Year: 2021, EngineType: "diesel", EngineCapacity: 3000, HorsePower: 286, Active: true},
			},
		},
		{
			client: models.Client{Username: "andrei.dumitrescu", FirstName: "Andrei", LastName: "Dumitrescu",
				PhoneNumbers: []string{"0744555666"}, Email: "andrei.dumitrescu@email.com", Active: false},
			cars: []models.Car{
				{LicensePlate: "B 999 ZZZ", ChassisNumber: "TMBZZZ1234567890", Brand: "Skoda", Model: "Octavia",
					Year: 2019, EngineType: "petrol", EngineCapacity: 1500, HorsePower: 150, Active: false},
			},
		},
	}

	var (
		clientIDs []models.ClientID
		carIDs    []models.CarID
	)
	for _, cs := range seeds {
		cl := cs.client
		cl.Password = s.password
		created, err := clients.Create(ctx, &cl)
		if err != nil {
			return fmt.Errorf("client %s: %w", cl.Username, err)
		}
		clientIDs = append(clientIDs, created.ID)

		for _, car := range cs.cars {
			car.ClientID = created.ID
			car.PowerKW = models.PowerKW(car.HorsePower)
			c, err := cars.Create(ctx, &car)
			if err != nil {
				return fmt.Errorf("car %s: %w", car.LicensePlate, err)
			}
			carIDs = append(carIDs, c.ID)
		}
	}

	// --------------------------------------------------
	// Parts
	// --------------------------------------------------
	for _, p := range []models.Part{
		{Name: "Engine oil 5W30", Category: "Oils", Stock: 30, UnitPrice: 60, UnitType: "litre"},
		{Name: "Universal oil filter", Category: "Filters", Stock: 25, UnitPrice: 45, UnitType: "piece"},
		{Name: "Air filter Golf 7", Category: "Filters", Stock: 15, UnitPrice: 75, UnitType: "piece"},
		{Name: "Front brake pads BMW X5", Category: "Brakes", Stock: 8, UnitPrice: 450, UnitType: "set"},
		{Name: "Front shock absorber Golf", Category: "Suspension", Stock: 4, UnitPrice: 350, UnitType: "piece"},
	} {
		p.Active = true
		if _, err := parts.Create(ctx, &p); err != nil {
			return fmt.Errorf("part %s: %w", p.Name, err)
		}
	}

	// --------------------------------------------------
	// Appointments and one finished service record
	// --------------------------------------------------
	done, err := appointments.Create(ctx, &models.Appointment{
		ClientID: clientIDs[0], CarID: carIDs[0],
		Date: s.day(-1), StartTime: "10:00", EndTime: "11:30", Duration: 90,
		Description: "Annual service", ContactMethod: "phone", Status: "completed",
	})
	if err != nil {
		return fmt.Errorf("appointment: %w", err)
	}
	if _, err := appointments.Create(ctx, &models.Appointment{
		ClientID: clientIDs[1], CarID: carIDs[2],
		Date: s.day(1), StartTime: "09:00", EndTime: "12:00", Duration: 180,
		Description: "Brake pads replacement, suspension check", ContactMethod: "email", Status: "scheduled",
	}); err != nil {
		return fmt.Errorf("appointment: %w", err)
	}

	now := time.Now().UTC()
	if _, err := records.Create(ctx, &models.ServiceRecord{
		AppointmentID: done.ID,
		Reception: models.Reception{
			VisualIssues:         "Scratch on the right door, broken headlight",
			ClientReportedIssues: "Suspension noise, braking problems",
			ReceivedBy:           "Mihai Stan",
			ReceivedAt:           now,
		},
		Processing: &models.Processing{
			Operations: []string{"Oil and filter change", "Brake check and adjustment", "Suspension diagnostics"},
			ReplacedParts: []models.ReplacedPart{
				{Name: "Engine oil 5W30", Quantity: 5, UnitPrice: 60},
				{Name: "Universal oil filter", Quantity: 1, UnitPrice: 45},
				{Name: "Air filter Golf 7", Quantity: 1, UnitPrice: 75},
			},
			AdditionalIssues:   "Front right shock absorber worn, needs replacement",
			Repaired:           models.RepairedPartial,
			ProcessingDuration: 80,
			ProcessedBy:        "Alex Marin",
			ProcessedAt:        now,
		},
		Completed: true,
	}); err != nil {
		return fmt.Errorf("service record: %w", err)
	}

	return nil
}

func (s *seeder) fakeClients(ctx context.Context, count int) error {
	clients := store.NewRepo[models.Client, models.ClientID](s.store, store.Clients)
	cars := store.NewRepo[models.Car, models.CarID](s.store, store.Cars)

	faker := gofakeit.New(0)

	for i := 0; i < count; i++ {
		first, last := faker.FirstName(), faker.LastName()
		username := strings.ToLower(fmt.Sprintf("%s.%s%d", first, last, i))

		cl, err := clients.Create(ctx, &models.Client{
			Username:     username,
			Password:     s.password,
			FirstName:    first,
			LastName:     last,
			PhoneNumbers: []string{faker.Numerify("07########")},
			Email:        username + "@" + faker.DomainName(),
			Active:       true,
		})
		if err != nil {
			return fmt.Errorf("fake client: %w", err)
		}

		hp := float64(faker.Number(70, 400))
		if _, err := cars.Create(ctx, &models.Car{
			ClientID:       cl.ID,
			LicensePlate:   fmt.Sprintf("B %03d %s", i%1000, strings.ToUpper(faker.LetterN(3))),
			ChassisNumber:  strings.ToUpper(faker.LetterN(3)) + faker.Numerify("##############"),
			Brand:          faker.CarMaker(),
			Model:          faker.CarModel(),
			Year:           faker.Number(2000, s.today.Year()),
			EngineType:     validators.EngineTypes[faker.Number(0, len(validators.EngineTypes)-1)],
			EngineCapacity: float64(faker.Number(9, 40) * 100),
			HorsePower:     hp,
			PowerKW:        models.PowerKW(hp),
			Active:         true,
		}); err != nil {
			return fmt.Errorf("fake car: %w", err)
		}
	}
	return nil
}
