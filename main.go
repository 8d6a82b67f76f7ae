package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/shivamkr-03/plantGuardAI/config"
	"github.com/shivamkr-03/plantGuardAI/db"
	"github.com/shivamkr-03/plantGuardAI/handlers"
	"github.com/shivamkr-03/plantGuardAI/inference"
	"github.com/shivamkr-03/plantGuardAI/routes"
	"github.com/shivamkr-03/plantGuardAI/services"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log.Printf("MODEL_PATH = %s", cfg.ModelPath)
	log.Printf("CLASS_NAMES_PATH = %s", cfg.ClassNamesPath)
	log.Printf("TREATMENTS_PATH = %s", cfg.TreatmentsPath)

	// Initialize database
	database, err := db.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Model load failure keeps the process alive: every other route still
	// works, /predict answers with a server error until the model is fixed.
	var classifier services.Classifier
	pre := &inference.Preprocessor{Height: 224, Width: 224, ImageNet: true}
	model, err := inference.Load(cfg.ModelPath, cfg.ModelMetadataPath)
	if err != nil {
		log.Printf("Failed to load model: %v", err)
	} else {
		defer model.Close()
		classifier = model
		h, w := model.TargetSize()
		pre = &inference.Preprocessor{Height: h, Width: w, ImageNet: model.ImageNet()}
		log.Printf("Model loaded successfully. Using target size: %dx%d (imagenet=%v)", h, w, model.ImageNet())
	}

	// Catalogs degrade instead of aborting: no class names means numeric
	// labels, no treatments means none attached.
	resolver := &inference.Resolver{}
	if classes, err := inference.LoadClassCatalog(cfg.ClassNamesPath); err != nil {
		log.Printf("No class catalog loaded (%v). Predictions will return class indexes.", err)
	} else {
		resolver.Classes = classes
		log.Printf("Loaded class names, count = %d", len(classes))
	}
	if treatments, err := inference.LoadTreatmentCatalog(cfg.TreatmentsPath); err != nil {
		log.Printf("No treatments loaded (%v). You can add a file at %s", err, cfg.TreatmentsPath)
	} else {
		resolver.Treatments = treatments
		log.Printf("Loaded treatments mapping, count = %d", len(treatments))
	}

	secret := []byte(cfg.JWTSecret)
	serviceManager := services.NewServiceManager(database, secret, classifier, pre, resolver)
	handlerManager := handlers.NewHandlerManager(serviceManager)

	r := routes.SetupRoutes(handlerManager, secret, cfg.FrontendOrigins)

	log.Printf("PlantGuard API starting on port %s", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
