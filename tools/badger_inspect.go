package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
)

// Debug tool: dumps the relay's Badger keyspace as a table.
// Usage: go run tools/badger_inspect.go -db /tmp/relay.db -prefix msg:
func main() {
	dbPath := flag.String("db", "/tmp/chat-relay.db", "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan (msg:, user:, room:)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Timestamp", "Who", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				stamp, who, detail, err := describe(key, v)
				if err != nil {
					// Skip the broken record instead of stopping the scan.
					fmt.Printf("Error decoding key %s: %v\n", key, err)
					return nil
				}
				table.Append([]string{key, stamp, who, detail})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

// describe picks the right projection for one record based on its key.
func describe(key string, value []byte) (stamp, who, detail string, err error) {
	switch {
	case strings.HasPrefix(key, "msg:"):
		var row struct {
			Sender  string `json:"sender"`
			Content string `json:"content"`
			At      int64  `json:"at"`
		}
		if err := json.Unmarshal(value, &row); err != nil {
			return "", "", "", err
		}
		return time.Unix(0, row.At).Format("15:04:05"), row.Sender, row.Content, nil

	case strings.HasPrefix(key, "user:id:"):
		var row struct {
			Email       string    `json:"email"`
			DisplayName string    `json:"display_name"`
			CreatedAt   time.Time `json:"created_at"`
		}
		if err := json.Unmarshal(value, &row); err != nil {
			return "", "", "", err
		}
		return row.CreatedAt.Format("15:04:05"), row.DisplayName, row.Email, nil

	case strings.HasPrefix(key, "room:"):
		var row struct {
			Name      string    `json:"name"`
			Members   []int64   `json:"members"`
			CreatedAt time.Time `json:"created_at"`
		}
		if err := json.Unmarshal(value, &row); err != nil {
			return "", "", "", err
		}
		return row.CreatedAt.Format("15:04:05"), row.Name, fmt.Sprintf("%d members", len(row.Members)), nil

	default:
		// Email index entries and sequences hold raw bytes.
		return "", "", fmt.Sprintf("%q", value), nil
	}
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	return badger.Open(opts)
}
