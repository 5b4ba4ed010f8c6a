package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/filter"
	"github.com/matzehuels/kintree/pkg/person"
	"github.com/matzehuels/kintree/pkg/pipeline"
	"github.com/matzehuels/kintree/pkg/render/sink"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"people": s.family.Len(),
		"hash":   s.family.Hash,
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	l, err := s.runner.Layout(r.Context(), s.family, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	// Filter parameters come back as per-person weights next to the layout.
	var jsonOpts []sink.JSONOption
	if opts.Filter != nil {
		jsonOpts = append(jsonOpts, sink.WithJSONWeights(filter.Weights(s.family.People, *opts.Filter)))
	}
	data, err := sink.RenderJSON(l, jsonOpts...)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), s.family, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="family-tree.`+format+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handlePeople(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if err := errors.ValidateQuery(q); err != nil {
		s.fail(w, r, err)
		return
	}
	people := s.family.People
	if strings.TrimSpace(q) != "" {
		people = filter.Search(people, q)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(people),
		"people": nonNil(people),
	})
}

func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	p, err := s.lookup(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleRelations(w http.ResponseWriter, r *http.Request) {
	p, err := s.lookup(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	extended, err := parseBoolParam(r, "extended")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	derive := s.family.Index.Derive
	if extended {
		derive = s.family.Index.DeriveExtended
	}
	rel, err := derive(p.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rel)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if err := errors.ValidateQuery(q); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query": q,
		"ids":   sortedIDs(s.family.People, filter.SearchIDs(s.family.People, q)),
	})
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if f == nil {
		all := filter.All()
		f = &all
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"filter":  f,
		"ids":     sortedIDs(s.family.People, filter.MatchingIDs(s.family.People, *f)),
		"weights": filter.Weights(s.family.People, *f),
	})
}

// lookup resolves the {id} URL parameter.
func (s *Server) lookup(r *http.Request) (person.Person, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidatePersonID(id); err != nil {
		return person.Person{}, err
	}
	return s.family.Index.Lookup(id)
}

// options builds pipeline options from the server defaults and the query.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil
	q := r.URL.Query()

	if v := q.Get("mode"); v != "" {
		opts.Mode = v
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("viz"); v != "" {
		opts.VizType = v
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v)
		}
		opts.Scale = scale
	}
	detailed, err := parseBoolParam(r, "detailed")
	if err != nil {
		return opts, err
	}
	opts.Detailed = opts.Detailed || detailed

	f, err := parseFilter(r)
	if err != nil {
		return opts, err
	}
	if f != nil {
		opts.Filter = f
	}
	opts.Refresh = false
	return opts, nil
}

var filterParams = []string{"clan", "generation", "gender", "living", "deceased", "q"}

// parseFilter returns nil when the request carries no filter parameter.
func parseFilter(r *http.Request) (*filter.Filter, error) {
	q := r.URL.Query()
	present := false
	for _, k := range filterParams {
		if q.Has(k) {
			present = true
			break
		}
	}
	if !present {
		return nil, nil
	}
	if err := errors.ValidateQuery(q.Get("q")); err != nil {
		return nil, err
	}
	f, err := filter.ParseFilter(q.Get("clan"), q.Get("generation"), q.Get("gender"), q.Get("living"), q.Get("deceased"), q.Get("q"))
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func parseBoolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", name, v)
	}
	return b, nil
}

// sortedIDs lists the members of set in person order.
func sortedIDs(people []person.Person, set filter.Set) []string {
	ids := make([]string, 0, set.Len())
	for _, p := range people {
		if set.Has(p.ID) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func nonNil(people []person.Person) []person.Person {
	if people == nil {
		return []person.Person{}
	}
	return people
}

// fail writes err and logs it when it is a server-side failure.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.HTTPStatus(err) >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
	}
	writeError(w, r, err)
}
