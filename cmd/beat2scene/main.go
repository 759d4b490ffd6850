package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ivlev/beat2scene/internal/catalog"
	"github.com/ivlev/beat2scene/internal/config"
	"github.com/ivlev/beat2scene/internal/director"
	"github.com/ivlev/beat2scene/internal/engine"
	"github.com/ivlev/beat2scene/internal/system"
	"github.com/ivlev/beat2scene/internal/wire"
)

var buildVersion = "dev"

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.InfoLevel)

	defaults := config.Default()

	inputPtr := flag.String("input", "", "Файл с битами (по умолчанию: самый свежий файл в input/beats/)")
	outputPtr := flag.String("output", "", "Путь к сценарию (если пусто, генерируется автоматически в output/)")
	catalogPtr := flag.String("catalog", defaults.CatalogPath, "Каталог персонажей и ресурсов (YAML)")
	widthPtr := flag.Int("width", defaults.Width, "Ширина сцены")
	heightPtr := flag.Int("height", defaults.Height, "Высота сцены")
	workersPtr := flag.Int("workers", defaults.Workers, "Потоки")
	previewDirPtr := flag.String("preview-dir", "", "Папка для раскадровки (PNG на каждую сцену)")
	previewAtPtr := flag.Int("preview-at", defaults.PreviewAt, "Момент кадра раскадровки в мс (отрицательное значение: конец сцены)")
	previewQRPtr := flag.Bool("preview-qr", false, "Добавлять QR-код с id бита на кадры раскадровки")
	backdropsPtr := flag.String("backdrops", "", "Папка с фонами для раскадровки (bg_park.png и т.д.)")
	schemaPtr := flag.Bool("schema", false, "Вывести JSON Schema входного документа и выйти")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")
	verbosePtr := flag.Bool("v", false, "Подробный лог")

	flag.Parse()

	if *verbosePtr {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *schemaPtr {
		data, err := wire.Schema()
		if err != nil {
			logrus.Fatalf("[-] Ошибка схемы: %v", err)
		}
		os.Stdout.Write(append(data, '\n'))
		return
	}

	if err := system.EnsureDirs("input/beats", "output"); err != nil {
		logrus.Fatalf("[-] Ошибка: %v", err)
	}

	inputPath := *inputPtr
	if inputPath == "" {
		latest, err := system.FindLatestCollection("input/beats")
		if err != nil {
			logrus.Fatalf("[-] Ошибка: %v. Положите YAML/JSON с битами в input/beats/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", inputPath)
	}

	finalOutput := *outputPtr
	if finalOutput == "" {
		finalOutput = director.GenerateScriptPath("output", inputPath)
	}

	cfg := &config.Config{
		InputPath:    inputPath,
		OutputScript: finalOutput,
		CatalogPath:  *catalogPtr,
		Width:        *widthPtr,
		Height:       *heightPtr,
		Workers:      *workersPtr,
		PreviewDir:   *previewDirPtr,
		PreviewAt:    *previewAtPtr,
		PreviewQR:    *previewQRPtr,
		BackdropDir:  *backdropsPtr,
		ShowStats:    *statsPtr,
		BuildVersion: buildVersion,
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	log := logrus.WithField("build", buildVersion)

	var dir catalog.Directory
	var res catalog.Resolver
	cat, err := catalog.ReadCatalog(cfg.CatalogPath)
	switch {
	case err == nil:
		dir, res = cat.Directory(), cat.Resolver()
		log.WithFields(logrus.Fields{"catalog": cfg.CatalogPath, "characters": len(cat.Characters)}).Debug("catalog loaded")
	case os.IsNotExist(err) && *catalogPtr == defaults.CatalogPath:
		fmt.Printf("[!] Каталог %s не найден, персонажи многослойных битов не будут разрешены\n", cfg.CatalogPath)
	default:
		logrus.Fatalf("[-] Ошибка каталога: %v", err)
	}

	project := engine.NewProject(cfg, dir, res, log)
	if err := project.Run(); err != nil {
		logrus.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputScript)
}
