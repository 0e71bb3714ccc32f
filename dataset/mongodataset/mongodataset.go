/*
Package mongodataset provides an implementation of dataset.Reader and
dataset.Writer that uses a MongoDB database as backend.

The dataset is kept on 2 collections of the session's default database:
a descriptor collection with a single document holding the number of
classes and features, and an instances collection with a document per
instance holding its position, class and feature values.
*/
package mongodataset

import (
	"context"
	"fmt"

	"github.com/pbanos/sapling/dataset"
	mgo "gopkg.in/mgo.v2"
)

const (
	descriptorCollectionName = "descriptor"
	instancesCollectionName  = "instances"
)

type descriptor struct {
	NumClasses  int `bson:"numClasses"`
	NumFeatures int `bson:"numFeatures"`
}

type instanceDoc struct {
	Seq      int       `bson:"seq"`
	Class    int       `bson:"class"`
	Features []float64 `bson:"features"`
}

/*
Store is a dataset.Reader and dataset.Writer backed by a MongoDB session.
*/
type Store struct {
	session *mgo.Session
}

/*
Open takes a MongoDB connection URL and returns a Store working on the
database it names, or an error if it fails to connect to it.
*/
func Open(url string) (*Store, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %v", url, err)
	}
	return New(session), nil
}

/*
New takes a MongoDB database session and returns a Store that works on the
default database for that session.
*/
func New(session *mgo.Session) *Store {
	return &Store{session}
}

/*
Close closes the underlying session.
*/
func (s *Store) Close() error {
	s.session.Close()
	return nil
}

/*
Read takes a context and returns the dataset stored on the database or an
error if it cannot be read or is not valid.
*/
func (s *Store) Read(ctx context.Context) (*dataset.Dataset, error) {
	desc := &descriptor{}
	err := s.collection(descriptorCollectionName).Find(nil).One(desc)
	if err != nil {
		return nil, fmt.Errorf("reading dataset descriptor: %v", err)
	}
	d := dataset.New(desc.NumClasses, desc.NumFeatures, nil)
	iter := s.collection(instancesCollectionName).Find(nil).Sort("seq").Iter()
	defer iter.Close()
	var doc instanceDoc
	for iter.Next(&doc) {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		d.Instances = append(d.Instances, dataset.NewInstance(doc.Class, doc.Features))
		doc = instanceDoc{}
	}
	err = iter.Err()
	if err != nil {
		return nil, fmt.Errorf("reading instances: %v", err)
	}
	err = d.Validate()
	if err != nil {
		return nil, err
	}
	return d, nil
}

/*
Write takes a context and a dataset and replaces whatever dataset the
database held with it.
*/
func (s *Store) Write(ctx context.Context, d *dataset.Dataset) error {
	err := d.Validate()
	if err != nil {
		return err
	}
	for _, name := range []string{descriptorCollectionName, instancesCollectionName} {
		_, err = s.collection(name).RemoveAll(nil)
		if err != nil {
			return fmt.Errorf("removing previous dataset from %s: %v", name, err)
		}
	}
	err = s.collection(descriptorCollectionName).Insert(&descriptor{d.NumClasses, d.NumFeatures})
	if err != nil {
		return fmt.Errorf("inserting descriptor: %v", err)
	}
	err = s.collection(instancesCollectionName).EnsureIndex(mgo.Index{Key: []string{"seq"}, Unique: true})
	if err != nil {
		return fmt.Errorf("indexing instances: %v", err)
	}
	docs := make([]interface{}, 0, len(d.Instances))
	for n, i := range d.Instances {
		docs = append(docs, &instanceDoc{n, i.Class(), i.Values()})
	}
	if len(docs) == 0 {
		return nil
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	err = s.collection(instancesCollectionName).Insert(docs...)
	if err != nil {
		return fmt.Errorf("inserting instances: %v", err)
	}
	return nil
}

func (s *Store) collection(name string) *mgo.Collection {
	return s.session.DB("").C(name)
}
