// Package contracts holds canonical provider responses.
//
// Each contract mirrors the documented response shape of an upstream API.
// Client and CLI tests serve these payloads from fake servers, so a change in
// how a client parses a provider is caught against a realistic response.
package contracts

// NewsAPIHeadlinesContract is a GET /v2/top-headlines response.
const NewsAPIHeadlinesContract = `{
  "status": "ok",
  "totalResults": 2,
  "articles": [
    {
      "source": {"id": "the-verge", "name": "The Verge"},
      "author": "Jane Doe",
      "title": "Chipmakers race to ship new AI accelerators",
      "description": "A look at the next generation of datacenter silicon.",
      "url": "https://www.theverge.com/2025/1/1/ai-accelerators",
      "urlToImage": "https://cdn.vox-cdn.com/thumbor/accelerators.jpg",
      "publishedAt": "2025-01-01T09:30:00Z",
      "content": "Chipmakers are racing... [+3100 chars]"
    },
    {
      "source": {"id": null, "name": "Reuters"},
      "author": null,
      "title": "Markets open higher on tech rally",
      "description": null,
      "url": "https://www.reuters.com/markets/tech-rally",
      "urlToImage": null,
      "publishedAt": "2025-01-01T08:00:00Z",
      "content": null
    }
  ]
}`

// NewsAPIErrorContract is a NewsAPI error body.
const NewsAPIErrorContract = `{
  "status": "error",
  "code": "apiKeyInvalid",
  "message": "Your API key is invalid or incorrect."
}`

// TMDBResultsContract is a GET /3/trending/movie/day or /3/search/movie response.
const TMDBResultsContract = `{
  "page": 1,
  "results": [
    {
      "adult": false,
      "backdrop_path": "/backdrop-550.jpg",
      "id": 550,
      "title": "Fight Club",
      "original_language": "en",
      "original_title": "Fight Club",
      "overview": "A ticking-time-bomb insomniac and a slippery soap salesman channel primal male aggression.",
      "poster_path": "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
      "media_type": "movie",
      "genre_ids": [18],
      "popularity": 61.4,
      "release_date": "1999-10-15",
      "video": false,
      "vote_average": 8.4,
      "vote_count": 26280
    },
    {
      "adult": false,
      "backdrop_path": null,
      "id": 13,
      "title": "Forrest Gump",
      "original_language": "en",
      "original_title": "Forrest Gump",
      "overview": "A man with a low IQ has accomplished great things in his life.",
      "poster_path": null,
      "media_type": "movie",
      "genre_ids": [35, 18],
      "popularity": 48.1,
      "release_date": "1994-06-23",
      "video": false,
      "vote_average": 8.5,
      "vote_count": 25000
    }
  ],
  "total_pages": 1,
  "total_results": 2
}`

// TMDBErrorContract is a TMDB error body.
const TMDBErrorContract = `{
  "status_code": 7,
  "status_message": "Invalid API key: You must be granted a valid key.",
  "success": false
}`

// PostsContract is a JSONPlaceholder GET /posts response.
const PostsContract = `[
  {
    "userId": 1,
    "id": 1,
    "title": "sunt aut facere repellat provident occaecati excepturi optio reprehenderit",
    "body": "quia et suscipit\nsuscipit recusandae consequuntur expedita et cum"
  },
  {
    "userId": 1,
    "id": 2,
    "title": "qui est esse",
    "body": "est rerum tempore vitae\nsequi sint nihil reprehenderit dolor beatae ea dolores neque"
  },
  {
    "userId": 2,
    "id": 11,
    "title": "et ea vero quia laudantium autem",
    "body": "delectus reiciendis molestiae occaecati non minima eveniet qui voluptatibus"
  }
]`
