package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quotenest/internal/domain/library"
	"quotenest/internal/domain/quote"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

// FileName is the fixed name of the cached dataset inside the cache directory.
const FileName = "scraped_quotes.txt"

// Cache makes the full scrape a one-time cost: the first run walks every
// listing page and writes the result to disk, later runs read it back.
type Cache struct {
	dir    string
	file   string
	source library.PageSource
	log    logrus.FieldLogger
}

// Info describes the state of the cache file.
type Info struct {
	Path    string
	Exists  bool
	Size    int64
	ModTime time.Time
}

// New creates a cache stored in dir that scrapes from source on a miss.
func New(dir string, source library.PageSource, log logrus.FieldLogger) *Cache {
	return &Cache{
		dir:    dir,
		file:   filepath.Join(dir, FileName),
		source: source,
		log:    log,
	}
}

// Path returns the location of the cache file.
func (c *Cache) Path() string {
	return c.file
}

// LoadOrBuild returns the cached dataset, scraping and persisting it first if
// no cache file exists.
func (c *Cache) LoadOrBuild(ctx context.Context) (quote.Dataset, error) {
	exists, err := c.exists()
	if err != nil {
		return quote.Dataset{}, err
	}

	if exists {
		return c.Load(ctx)
	}

	c.log.WithField("file", c.file).Info("No cached quotes found, scraping")
	dataset, err := c.Build(ctx)
	if err != nil {
		return quote.Dataset{}, err
	}

	if err := c.Save(dataset); err != nil {
		return quote.Dataset{}, err
	}

	return dataset, nil
}

// Load reads the dataset from the cache file. It returns ErrStorageAbsent when
// the file does not exist.
func (c *Cache) Load(_ context.Context) (quote.Dataset, error) {
	file, err := os.Open(c.file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return quote.Dataset{}, fmt.Errorf("%s: %w", c.file, quote.ErrStorageAbsent)
		}
		return quote.Dataset{}, fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	var records []quote.Record
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return quote.Dataset{}, fmt.Errorf("failed to decode cache file %s: %w", c.file, err)
	}

	c.log.WithFields(logrus.Fields{
		"quotes": len(records),
		"file":   c.file,
	}).Info("Loaded quotes from cache")

	return quote.NewDataset(records), nil
}

// Build scrapes listing pages from 1 upwards until a page reports no next
// page. The last page's records are included.
func (c *Cache) Build(ctx context.Context) (quote.Dataset, error) {
	var records []quote.Record

	for index := 1; ; index++ {
		page, err := c.source.FetchPage(ctx, index)
		if err != nil {
			return quote.Dataset{}, fmt.Errorf("failed to scrape page %d: %w", index, err)
		}

		records = append(records, page.Records...)
		if !page.HasNext {
			break
		}
	}

	c.log.WithField("count", len(records)).Info("Scraped quotes from site")
	return quote.NewDataset(records), nil
}

// Save writes dataset to the cache file. The file is written under a
// temporary name and renamed, so a reader never sees a partial file.
func (c *Cache) Save(dataset quote.Dataset) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	records := dataset.Records()
	if err := gocsv.MarshalFile(&records, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode cache data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.file); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"quotes": len(records),
		"file":   c.file,
	}).Info("Saved quotes to cache")

	return nil
}

// Refresh discards the cache file and rebuilds it from the site.
func (c *Cache) Refresh(ctx context.Context) (quote.Dataset, error) {
	if err := c.Clear(); err != nil {
		return quote.Dataset{}, err
	}
	return c.LoadOrBuild(ctx)
}

// Clear removes the cache file.
func (c *Cache) Clear() error {
	if err := os.Remove(c.file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	c.log.WithField("file", c.file).Info("Cleared quote cache")
	return nil
}

// Info returns information about the cache file.
func (c *Cache) Info() (Info, error) {
	info := Info{Path: c.file}

	stat, err := os.Stat(c.file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return info, nil
		}
		return info, fmt.Errorf("failed to stat cache file: %w", err)
	}

	info.Exists = true
	info.Size = stat.Size()
	info.ModTime = stat.ModTime()
	return info, nil
}

func (c *Cache) exists() (bool, error) {
	_, err := os.Stat(c.file)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat cache file: %w", err)
	}
}
