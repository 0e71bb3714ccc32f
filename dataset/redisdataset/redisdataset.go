/*
Package redisdataset provides an implementation of dataset.Reader and
dataset.Writer that uses a redis DB as backend.

A dataset is stored under a key prefix: the <prefix>:descriptor key holds
the number of classes and features as "classes,features", and the
<prefix>:instances list holds an entry per instance with its feature
values followed by its class, comma separated.
*/
package redisdataset

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/csv"
	"gopkg.in/redis.v5"
)

/*
DefaultPrefix is the key prefix used when a redis URL carries no fragment.
*/
const DefaultPrefix = "sapling"

/*
Store is a dataset.Reader and dataset.Writer backed by a redis DB.
*/
type Store struct {
	rc     *redis.Client
	prefix string
}

/*
New takes a redis client and a key prefix and returns a Store.
*/
func New(rc *redis.Client, prefix string) *Store {
	return &Store{rc, prefix}
}

/*
Open takes a URL like redis://:password@host:port/db#prefix and returns a
Store for it, or an error if the URL cannot be parsed.
*/
func Open(rawURL string) (*Store, error) {
	opts, prefix, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return New(redis.NewClient(opts), prefix), nil
}

/*
ParseURL takes a redis URL and returns the client options and the key
prefix it describes.
*/
func ParseURL(rawURL string) (*redis.Options, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("parsing redis URL: %v", err)
	}
	if u.Scheme != "redis" {
		return nil, "", fmt.Errorf("parsing redis URL: invalid scheme %q", u.Scheme)
	}
	opts := &redis.Options{Addr: u.Host}
	if u.Port() == "" {
		opts.Addr = u.Hostname() + ":6379"
	}
	if u.User != nil {
		opts.Password, _ = u.User.Password()
	}
	if db := strings.Trim(u.Path, "/"); db != "" {
		opts.DB, err = strconv.Atoi(db)
		if err != nil {
			return nil, "", fmt.Errorf("parsing redis URL: invalid database %q", db)
		}
	}
	prefix := u.Fragment
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return opts, prefix, nil
}

/*
Close closes the underlying redis client.
*/
func (s *Store) Close() error {
	return s.rc.Close()
}

/*
Read takes a context and returns the dataset stored under the prefix or an
error if it cannot be read or is not valid.
*/
func (s *Store) Read(ctx context.Context) (*dataset.Dataset, error) {
	desc, err := s.rc.Get(s.keyFor("descriptor")).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("reading dataset descriptor: no dataset under prefix %q", s.prefix)
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset descriptor: %v", err)
	}
	numClasses, numFeatures, err := csv.ParseDescriptor(strings.Split(desc, ","))
	if err != nil {
		return nil, fmt.Errorf("parsing dataset descriptor %q: %v", desc, err)
	}
	entries, err := s.rc.LRange(s.keyFor("instances"), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading instances: %v", err)
	}
	d := dataset.New(numClasses, numFeatures, make(dataset.Instances, 0, len(entries)))
	for n, entry := range entries {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		instance, err := csv.ParseInstance(strings.Split(entry, ","), numClasses, numFeatures)
		if err != nil {
			return nil, fmt.Errorf("parsing instance %d: %v", n+1, err)
		}
		d.Instances = append(d.Instances, instance)
	}
	err = d.Validate()
	if err != nil {
		return nil, err
	}
	return d, nil
}

/*
Write takes a context and a dataset and replaces whatever dataset was
stored under the prefix with it, in a single transaction.
*/
func (s *Store) Write(ctx context.Context, d *dataset.Dataset) error {
	err := d.Validate()
	if err != nil {
		return err
	}
	entries := make([]interface{}, 0, len(d.Instances))
	for _, i := range d.Instances {
		entries = append(entries, strings.Join(csv.FormatInstance(i), ","))
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	_, err = s.rc.TxPipelined(func(pipe *redis.Pipeline) error {
		pipe.Del(s.keyFor("descriptor"), s.keyFor("instances"))
		pipe.Set(s.keyFor("descriptor"), fmt.Sprintf("%d,%d", d.NumClasses, d.NumFeatures), 0)
		if len(entries) > 0 {
			pipe.RPush(s.keyFor("instances"), entries...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storing dataset under prefix %q: %v", s.prefix, err)
	}
	return nil
}

func (s *Store) keyFor(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}
